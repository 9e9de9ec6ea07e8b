package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
)

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware("secret", "test"))
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func TestAuthMiddleware_Sources(t *testing.T) {
	r := newAuthEngine()
	token, _ := util.GenerateToken("secret", "test", 5, time.Hour)

	header := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	header.Header.Set("Authorization", "bearer "+token)

	query := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)

	cookie := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	cookie.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})

	for name, req := range map[string]*http.Request{"header": header, "query": query, "cookie": cookie} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != `{"id":5}` {
			t.Errorf("%s: %d %s, want 200 with id 5", name, w.Code, w.Body.String())
		}
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	r := newAuthEngine()
	wrongKey, _ := util.GenerateToken("other", "test", 5, time.Hour)
	wrongIssuer, _ := util.GenerateToken("secret", "elsewhere", 5, time.Hour)

	for name, auth := range map[string]string{
		"missing":      "",
		"wrong key":    "Bearer " + wrongKey,
		"wrong issuer": "Bearer " + wrongIssuer,
		"basic":        "Basic dXNlcjpwYXNz",
	} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
	}
}
