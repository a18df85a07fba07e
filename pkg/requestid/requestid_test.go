package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/pkg/logger"
	"github.com/karkencompany/website/pkg/requestid"
)

func serve(t *testing.T, h func(http.Handler) http.Handler, header string) (string, string) {
	t.Helper()
	var seen string
	handler := h(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return seen, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates when missing", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, requestid.Middleware(), "")
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, echoed)
	})

	t.Run("reuses a valid incoming id", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, requestid.Middleware(), "edge-42_a")
		assert.Equal(t, "edge-42_a", seen)
		assert.Equal(t, "edge-42_a", echoed)
	})

	t.Run("replaces invalid ids", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"a b", "a/b", "<script>", strings.Repeat("x", 129)} {
			seen, _ := serve(t, requestid.Middleware(requestid.WithGenerator(func() string { return "gen" })), bad)
			assert.Equal(t, "gen", seen, bad)
		}
	})

	t.Run("ignores incoming when configured", func(t *testing.T) {
		t.Parallel()
		seen, _ := serve(t, requestid.Middleware(
			requestid.WithGenerator(func() string { return "fresh" }),
			requestid.WithoutIncoming(),
		), "client-id")
		assert.Equal(t, "fresh", seen)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Empty(t, requestid.FromContext(nil)) //nolint:staticcheck

	ctx := requestid.WithContext(context.Background(), "abc")
	assert.Equal(t, "abc", requestid.FromContext(ctx))

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(requestid.LoggerExtractor()))
	log.InfoContext(ctx, "x")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	buf.Reset()
	log.InfoContext(context.Background(), "y")
	assert.NotContains(t, buf.String(), "request_id")
}
