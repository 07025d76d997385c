package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-feedback-server/models"
)

// validateMediaFile validates extension and size (<= 50MB) for voice/video uploads
func validateMediaFile(h *multipart.FileHeader, contentTypeIndex int) bool {
	if h == nil || h.Size <= 0 || h.Size > 50*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch contentTypeIndex {
	case models.ContentTypeVoice:
		switch ext {
		case ".mp3", ".wav", ".m4a", ".ogg", ".webm":
			return true
		}
	case models.ContentTypeVideo:
		switch ext {
		case ".mp4", ".mov", ".webm", ".mkv":
			return true
		}
	}
	return false
}

// uploadFeedbackMedia uploads a voice or video recording and returns the URL
// the client then submits as media_content. The blob itself never lives in
// this server; feedback records only hold the reference.
func uploadFeedbackMedia(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := c.Request.ParseMultipartForm(50 << 20); err != nil { // 50MB
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
		return
	}

	contentType := models.ContentTypeVoice
	if c.PostForm("content_type") == "video" {
		contentType = models.ContentTypeVideo
	}

	header, err := c.FormFile("media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No media file provided"})
		return
	}

	if !validateMediaFile(header, contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid media file"})
		return
	}

	// Get Cloudinary configuration from environment
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media storage not configured"})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media storage initialization failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Could not read media file"})
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("feedback/%d/%s", userID, uuid.NewString())
	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "video", // Cloudinary stores audio under the video resource type
	})
	if err != nil {
		log.Printf("❌ Media upload failed for patient %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media upload failed"})
		return
	}

	log.Printf("✅ Patient %d uploaded %s media (%d bytes)", userID, models.ContentTypeLabel(contentType), header.Size)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Media uploaded successfully",
		"data": gin.H{
			"media_content":      result.SecureURL,
			"content_type_index": contentType,
		},
	})
}
