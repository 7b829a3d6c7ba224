package middleware

import (
	"log"
	"net/http"
	"time"

	"commandapi/appctx"
	"commandapi/core"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger stamps every request with a request id and logs its outcome.
// A well-formed incoming X-Request-ID is kept, anything else is replaced.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !core.IsValidULID(requestID) {
			requestID = core.NewID(core.RequestIDPrefix)
		}

		w.Header().Set(RequestIDHeader, requestID)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		next.ServeHTTP(recorder, r.WithContext(appctx.SetRequestID(r.Context(), requestID)))

		log.Printf("📋 [%s] %s %s -> %d (%s)", requestID, r.Method, r.URL.Path, recorder.status, time.Since(started))
	})
}
