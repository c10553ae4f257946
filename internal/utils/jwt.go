package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Rôle unique de la boutique. Le jour où il faut plusieurs niveaux d'accès,
// c'est une donnée à ajouter ici, pas une refonte.
const RoleAdmin = "admin"

func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateAdminJWT émet le jeton porteur de l'admin, valable 24h
func GenerateAdminJWT() (string, error) {
	claims := jwt.MapClaims{
		"role": RoleAdmin,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
