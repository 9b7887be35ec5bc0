package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"khata/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestCORS_AllowedOrigin(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:3000"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:3000"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	r := newEngine(CORS([]string{"*"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://app.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:3000"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := newEngine(RequestID(), Recovery())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"INTERNAL_ERROR"`)
}

func TestDocumentType(t *testing.T) {
	r := gin.New()
	r.GET("/bound", DocumentType(domain.DocumentTypeSalesReturn), func(c *gin.Context) {
		c.String(http.StatusOK, string(GetDocumentType(c)))
	})
	r.GET("/unbound", func(c *gin.Context) {
		c.String(http.StatusOK, string(GetDocumentType(c)))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bound", http.NoBody))
	assert.Equal(t, "sales_return", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unbound", http.NoBody))
	assert.Equal(t, "", w.Body.String())
}
