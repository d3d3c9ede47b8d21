package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("production", &buf).Info("saved", "student", "Ada")

	assert.Contains(t, buf.String(), `"msg":"saved"`)
	assert.Contains(t, buf.String(), `"student":"Ada"`)
}

func TestNewLogger_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("development", &buf).Debug("loaded", "rows", 3)

	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestMiddleware_RequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := NewLogger("production", &buf)

	var seen string
	router := gin.New()
	router.Use(RequestID(), LoggerMiddleware(logger), ContextLogger(logger))
	router.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		GetLoggerFromContext(c).Info("handled")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, seen)
	assert.Contains(t, buf.String(), `"msg":"handled"`)
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"msg":"HTTP Request"`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
}
