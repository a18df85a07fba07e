package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/pkg/clientip"
	"github.com/karkencompany/website/pkg/ratelimiter"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var cfg = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Minute}

func newBucket(t *testing.T) (*ratelimiter.Bucket, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(c.Now), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, c
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	for _, bad := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(store, bad)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
	_, err := ratelimiter.NewBucket(nil, cfg)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket(t *testing.T) {
	t.Parallel()

	t.Run("burst then reject", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t)
		ctx := context.Background()
		for want := 2; want >= 0; want-- {
			res, err := b.Allow(ctx, "ip")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, want, res.Remaining)
		}
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.False(t, res.Allowed())

		res, err = b.Status(ctx, "ip")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Remaining, "rejections do not drain the bucket")
	})

	t.Run("refill", func(t *testing.T) {
		t.Parallel()
		b, c := newBucket(t)
		ctx := context.Background()
		_, err := b.AllowN(ctx, "ip", 3)
		require.NoError(t, err)

		c.Advance(90 * time.Second)
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, c.Now().Add(30*time.Second), res.ResetAt)

		c.Advance(time.Hour)
		res, err = b.Status(ctx, "ip")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t)
		ctx := context.Background()
		_, err := b.AllowN(ctx, "a", 3)
		require.NoError(t, err)
		res, err := b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)

		require.NoError(t, b.Reset(ctx, "a"))
		res, err = b.Allow(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("invalid count", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t)
		_, err := b.AllowN(context.Background(), "ip", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})
}

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, ratelimiter.ErrStoreUnavailable
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("limits per ip", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t)
		h := clientip.Middleware()(ratelimiter.Middleware(b, ratelimiter.ByIP,
			ratelimiter.WithLimitedHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte("slow down"))
			})),
		)(ok))

		do := func(ip string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/contact", nil)
			req.RemoteAddr = ip + ":1000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec
		}

		for range 3 {
			assert.Equal(t, http.StatusNoContent, do("192.0.2.1").Code)
		}
		rec := do("192.0.2.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "slow down", rec.Body.String())
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))

		assert.Equal(t, http.StatusNoContent, do("192.0.2.2").Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(failingStore{}, cfg)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		ratelimiter.Middleware(b, ratelimiter.ByPath)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var seen error
		rec = httptest.NewRecorder()
		ratelimiter.Middleware(b, ratelimiter.ByPath,
			ratelimiter.WithFailOpen(),
			ratelimiter.WithErrorHandler(func(_ http.ResponseWriter, _ *http.Request, err error) { seen = err }),
		)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, errors.Is(seen, ratelimiter.ErrStoreUnavailable))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "192.0.2.9:1"
	assert.Equal(t, "192.0.2.9:POST /contact", ratelimiter.Composite(ratelimiter.ByIP, ratelimiter.ByPath)(req))

	long := ratelimiter.Composite(func(*http.Request) string { return strings.Repeat("k", 100) })(req)
	assert.LessOrEqual(t, len(long), 13)
	assert.Empty(t, ratelimiter.Composite(func(*http.Request) string { return "" })(req))
}

// TestRedisStore runs against a real server when REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	store := ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix("test:ratelimit:"))
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)

	ctx := context.Background()
	key := "redis-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = b.Reset(ctx, key) })

	for want := 2; want >= 0; want-- {
		res, err := b.Allow(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, res.Remaining)
	}
	res, err := b.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.True(t, res.RetryAfter() > 0)
}
