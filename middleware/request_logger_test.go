package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commandapi/appctx"
	"commandapi/core"
)

func TestRequestLogger(t *testing.T) {
	t.Run("mints a request id when none is sent", func(t *testing.T) {
		var seenID string
		handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := appctx.GetRequestID(r.Context())
			require.True(t, ok)
			seenID = id
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/commands", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		headerID := rec.Header().Get(RequestIDHeader)
		assert.True(t, core.IsValidULID(headerID))
		assert.True(t, strings.HasPrefix(headerID, core.RequestIDPrefix+"_"))
		assert.Equal(t, headerID, seenID)
	})

	t.Run("keeps a valid incoming request id", func(t *testing.T) {
		incoming := core.NewID(core.RequestIDPrefix)
		handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := appctx.GetRequestID(r.Context())
			assert.Equal(t, incoming, id)
		}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, incoming)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a malformed incoming request id", func(t *testing.T) {
		handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		headerID := rec.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "<script>", headerID)
		assert.True(t, core.IsValidULID(headerID))
	})
}
