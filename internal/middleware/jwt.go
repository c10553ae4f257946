package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tafaya_back_end/internal/utils"
)

// AuthRequired protège les endpoints d'administration. Deux échecs distincts :
// aucun jeton présenté (401) et jeton invalide ou expiré (403).
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
			}
			return utils.JWTSecret(), nil
		})

		if err != nil || !token.Valid {
			log.Printf("❌ Jeton rejeté: %v", err)
			c.JSON(http.StatusForbidden, gin.H{"error": "Token invalide ou expiré"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Token invalide ou expiré"})
			c.Abort()
			return
		}

		c.Set("role", claims["role"])
		c.Next()
	}
}
