package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	messages []string
	fields   []map[string]any
}

func (l *captureLogger) Debug(msg string, args ...any) {}
func (l *captureLogger) Warn(msg string, args ...any)  {}
func (l *captureLogger) Error(msg string, args ...any) {}
func (l *captureLogger) Fatal(msg string, args ...any) {}

func (l *captureLogger) Info(msg string, args ...any) {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestRequestLoggerEmitsStructuredEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &captureLogger{}

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/listings", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings?city=berlin", nil)
	router.ServeHTTP(w, req)

	require.Len(t, log.fields, 1)
	fields := log.fields[0]
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/listings?city=berlin", fields["path"])
	assert.Equal(t, http.StatusNoContent, fields["status"])
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
}

func TestRequestLoggerRecordsErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &captureLogger{}

	router := gin.New()
	router.Use(RequestLogger(log))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/missing", nil)
	router.ServeHTTP(w, req)

	require.Len(t, log.fields, 1)
	assert.Equal(t, http.StatusNotFound, log.fields[0]["status"])
}
