// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyByIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr",
			remoteAddr: "10.0.0.1:54321",
			want:       "ratelimit:ip:10.0.0.1",
		},
		{
			name:       "forwarded for uses last hop",
			remoteAddr: "10.0.0.1:54321",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"},
			want:       "ratelimit:ip:5.6.7.8",
		},
		{
			name:       "real ip",
			remoteAddr: "10.0.0.1:54321",
			headers:    map[string]string{"X-Real-IP": "9.9.9.9"},
			want:       "ratelimit:ip:9.9.9.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, KeyByIP(req))
		})
	}
}

func TestKeyByUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "ratelimit:ip:10.0.0.1", KeyByUser(req))

	ctx := context.WithValue(req.Context(), UsernameKey, "alice")
	assert.Equal(t, "ratelimit:user:alice", KeyByUser(req.WithContext(ctx)))
}

func TestLocalLimiter(t *testing.T) {
	limiter := newLocalLimiter()
	limit := PerMinute(60, 2)

	res, err := limiter.allow("k", limit)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)

	res, err = limiter.allow("k", limit)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)

	// Burst of 2 exhausted.
	res, err = limiter.allow("k", limit)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Allowed)
	assert.Positive(t, res.RetryAfter)

	// Separate keys do not share buckets.
	res, err = limiter.allow("other", PerSecond(10, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)
}
