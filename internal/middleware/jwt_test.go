package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tafaya_back_end/internal/utils"
)

func routeurProtege() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protege", AuthRequired(), RequireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func appel(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protege", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Absence de jeton et jeton rejeté doivent se distinguer par le code HTTP
func TestAuthRequiredDistingueAbsentEtInvalide(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	r := routeurProtege()

	assert.Equal(t, http.StatusUnauthorized, appel(t, r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, appel(t, r, "Basic abc").Code)
	assert.Equal(t, http.StatusForbidden, appel(t, r, "Bearer nimporte.quoi.dutout").Code)
}

func TestAuthRequiredJetonExpire(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	claims := jwt.MapClaims{
		"role": utils.RoleAdmin,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	expire, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(utils.JWTSecret())
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, appel(t, routeurProtege(), "Bearer "+expire).Code)
}

func TestAuthRequiredJetonValide(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := utils.GenerateAdminJWT()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, appel(t, routeurProtege(), "Bearer "+token).Code)
}

// Un jeton signé correctement mais sans le rôle admin est refusé
func TestRequireAdminSansRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	claims := jwt.MapClaims{
		"role": "stagiaire",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(utils.JWTSecret())
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, appel(t, routeurProtege(), "Bearer "+token).Code)
}
