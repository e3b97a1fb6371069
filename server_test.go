package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestReadinessGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	previous := config.GetDB()
	config.SetDB(nil)
	t.Cleanup(func() { config.SetDB(previous) })

	r := newRouter(quietLogger())
	assert.Equal(t, http.StatusNoContent, get(r, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/companies/acme/compliance").Code)
}

func TestRouterServesAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutil.NewTestDB(t)

	r := newRouter(quietLogger())
	assert.Equal(t, http.StatusNoContent, get(r, "/healthz").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/nope").Code)

	w := get(r, "/api/companies/acme/compliance")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "company_not_found")
	assert.NotEmpty(t, w.Header().Get("x-correlation-id"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim("  "))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitAndTrim(" https://a.example, ,https://b.example "))
}
