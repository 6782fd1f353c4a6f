package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_ReusesValidHeader(t *testing.T) {
	t.Parallel()

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, given)

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, given, w.Header().Get(HeaderRequestID))
}

func TestRequestID_ReplacesInvalidHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid\nInjected: 1")

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	got := w.Header().Get(HeaderRequestID)
	assert.NotEqual(t, "not-a-uuid\nInjected: 1", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}
