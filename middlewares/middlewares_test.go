package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/middlewares"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/testutil"
	"github.com/mmdatafocus/schedule3_backend/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCorrelationMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.GET("/echo", func(c *gin.Context) {
		id, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		c.String(http.StatusOK, id)
	})

	header := http.Header{}
	header.Set(middlewares.CorrelationHeader, "req-42")
	w := serve(r, "/echo", header)
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(middlewares.CorrelationHeader))

	w = serve(r, "/echo", nil)
	minted := w.Header().Get(middlewares.CorrelationHeader)
	assert.Len(t, minted, 36)
	assert.Equal(t, minted, w.Body.String())

	header.Set(middlewares.CorrelationHeader, strings.Repeat("x", 200))
	w = serve(r, "/echo", header)
	assert.Len(t, w.Body.String(), 36)
}

func TestCompanyScopeMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/companies/:companyId", middlewares.CompanyScopeMiddleware(), func(c *gin.Context) {
		id, ok := utils.GetCompanyIdFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, id)
	})

	w := serve(r, "/companies/acme", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme", w.Body.String())

	w = serve(r, "/companies/%20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"validation"`)
}

func TestLoadersResolveHeads(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := middlewares.WithLoaders(context.Background(), middlewares.NewLoaders())

	heads, err := models.GetMajorHeads(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, heads)

	ids := []int{heads[0].ID, heads[1].ID, 999_999}
	resolved, errs := middlewares.GetMajorHeads(ctx, ids)
	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, resolved, len(ids))
	assert.Equal(t, heads[0].Name, resolved[0].Name)
	assert.Equal(t, heads[1].Name, resolved[1].Name)
	assert.Equal(t, 999_999, resolved[2].ID)
	assert.Equal(t, "Unclassified", resolved[2].Name)

	single, err := middlewares.GetMajorHead(ctx, heads[0].ID)
	require.NoError(t, err)
	assert.Equal(t, heads[0].Code, single.Code)

	grouping, err := middlewares.GetGrouping(ctx, 999_999)
	require.NoError(t, err)
	assert.Equal(t, "Ungrouped", grouping.Name)
}

// fakeRedis answers INCR and EXPIRE pipelines in memory.
type fakeRedis struct {
	counts     map[string]int64
	ttls       map[string]any
	failExpire int
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }
func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook { return next }

func (f *fakeRedis) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			args := cmd.Args()
			key := args[1].(string)
			switch c := cmd.(type) {
			case *redis.IntCmd:
				f.counts[key]++
				c.SetVal(f.counts[key])
			case *redis.BoolCmd:
				if f.failExpire > 0 {
					f.failExpire--
					c.SetErr(errors.New("READONLY You can't write against a read only replica."))
					continue
				}
				if _, ok := f.ttls[key]; ok {
					c.SetVal(false)
					continue
				}
				f.ttls[key] = args[2]
				c.SetVal(true)
			}
		}
		return nil
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	fake := &fakeRedis{counts: map[string]int64{}, ttls: map[string]any{}, failExpire: 1}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(fake)
	defer client.Close()

	r := gin.New()
	r.Use(middlewares.NewRateLimiter(2, time.Minute).UseClient(client).RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	key := "RateLimit:192.0.2.1"

	// The expire on the first request fails; the request still goes through.
	w := serve(r, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, fake.ttls, key)

	// The next request in the window sets the missing TTL.
	w = serve(r, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(60), fake.ttls[key])

	w = serve(r, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"rate_limited"`)
	assert.Equal(t, int64(3), fake.counts[key])
}

func TestRateLimitMiddlewareWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.NewRateLimiter(1, time.Minute).UseClient(nil).RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "/ping", nil).Code)
	}
}
