package admin

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tafaya_back_end/internal/middleware"
	"tafaya_back_end/internal/utils"
)

// Login échange le mot de passe partagé de la boutique contre un jeton
// porteur valable 24h
func Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'password' est obligatoire"})
		return
	}

	ctx := context.Background()

	if !utils.VerifyAdminPassword(req.Password) {
		middleware.RecordLoginFailure(ctx, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe incorrect"})
		return
	}

	middleware.ResetLoginAttempts(ctx, c.ClientIP())

	token, err := utils.GenerateAdminJWT()
	if err != nil {
		log.Printf("❌ Erreur génération jeton: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération jeton"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Verify confirme que le jeton présenté est toujours valide (le front
// l'appelle au chargement de la console admin)
func Verify(c *gin.Context) {
	role, _ := c.Get("role")
	c.JSON(http.StatusOK, gin.H{"valid": true, "role": role})
}
