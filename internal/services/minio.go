package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"tafaya_back_end/internal/database"
)

// UploadImage envoie une image produit vers MinIO et retourne son URL publique
func UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("products/%d-%s%s",
		time.Now().UnixNano(), uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err = database.MinioClient.PutObject(ctx, bucket, objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}
