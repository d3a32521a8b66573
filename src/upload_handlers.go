package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"venuebook/src/config"
	awslib "venuebook/src/lib/aws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	uploadMinSize = 1 << 10
	uploadMaxSize = 5 << 20
)

var uploadExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// validateUpload sniffs the content type instead of trusting the client
// header and bounds the size. Returns the detected MIME type.
func validateUpload(data []byte) (string, error) {
	if len(data) < uploadMinSize {
		return "", fmt.Errorf("file too small: %d bytes (minimum %d)", len(data), uploadMinSize)
	}
	if len(data) > uploadMaxSize {
		return "", fmt.Errorf("file too large: %d bytes (maximum %d)", len(data), uploadMaxSize)
	}
	mime := http.DetectContentType(data)
	if _, ok := uploadExtensions[mime]; !ok {
		return "", fmt.Errorf("unsupported file type %s", mime)
	}
	return mime, nil
}

func uploadRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.POST("/upload", func(ctx *gin.Context) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, uploadMaxSize+1))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mime, err := validateUpload(data)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		savedAs := uuid.NewString() + uploadExtensions[mime]
		dir := config.UploadsDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("Error creating uploads dir: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
			return
		}
		if err := os.WriteFile(path.Join(dir, savedAs), data, 0o644); err != nil {
			log.Printf("Error persisting upload: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
			return
		}
		if os.Getenv("S3_UPLOADS_BUCKET") != "" {
			go awslib.S3MirrorUpload(savedAs, data, mime)
		}

		ctx.JSON(http.StatusOK, gin.H{
			"url":      fmt.Sprintf("%s/uploads/%s", config.AppBaseURL(), savedAs),
			"filename": fileHeader.Filename,
			"size":     len(data),
			"type":     mime,
			"savedAs":  savedAs,
		})
	})
	return g
}
