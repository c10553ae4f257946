package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"tafaya_back_end/internal/services"
)

// Limite alignée sur l'ancien serveur d'upload
const maxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadImage reçoit une image produit (champ "image") et retourne son URL
// publique sur MinIO
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier trop volumineux (5 Mo maximum)"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageExts[ext] || !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seules les images sont acceptées"})
		return
	}

	url, err := services.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		log.Printf("❌ Erreur upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
