package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(JWTSecret())
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	return signed
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/admin", AuthRequired(), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/open", AuthOptional(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := authRouter()

	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}
	if w := doGet(r, "/me", "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", w.Code)
	}
	if w := doGet(r, "/me", signToken(t, 9, "user")); w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", w.Code)
	}
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(9),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if w := doGet(authRouter(), "/me", signed); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status = %d, want 401", w.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	r := authRouter()

	if w := doGet(r, "/admin", signToken(t, 9, "user")); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: status = %d, want 403", w.Code)
	}
	if w := doGet(r, "/admin", signToken(t, 1, "admin")); w.Code != http.StatusOK {
		t.Fatalf("admin: status = %d, want 200", w.Code)
	}
}

func TestAuthOptional(t *testing.T) {
	r := authRouter()

	if w := doGet(r, "/open", ""); w.Code != http.StatusOK {
		t.Fatalf("guest: status = %d, want 200", w.Code)
	}
	w := doGet(r, "/open", signToken(t, 4, "user"))
	if w.Code != http.StatusOK {
		t.Fatalf("authed: status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":4}` {
		t.Fatalf("body = %q", body)
	}
}
