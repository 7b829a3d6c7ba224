package appctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	t.Run("round trips through context", func(t *testing.T) {
		ctx := SetRequestID(context.Background(), "req_01hzxq3c4v5b6n7m8k9j0h1g2f")

		requestID, ok := GetRequestID(ctx)

		assert.True(t, ok)
		assert.Equal(t, "req_01hzxq3c4v5b6n7m8k9j0h1g2f", requestID)
	})

	t.Run("missing request id", func(t *testing.T) {
		requestID, ok := GetRequestID(context.Background())

		assert.False(t, ok)
		assert.Empty(t, requestID)
	})

	t.Run("empty request id is treated as missing", func(t *testing.T) {
		_, ok := GetRequestID(SetRequestID(context.Background(), ""))

		assert.False(t, ok)
	})
}
