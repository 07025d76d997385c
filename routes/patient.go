package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-feedback-server/database"
	"hospital-feedback-server/models"
	"hospital-feedback-server/services"
	"hospital-feedback-server/store"
	"hospital-feedback-server/utils"
)

var (
	feedbackStore    *store.FeedbackStore
	sentimentService *services.SentimentService
)

// RegisterPatientRoutes registers patient registration, login and feedback
// submission endpoints
func RegisterPatientRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	feedbackStore = store.NewFeedbackStore(database.DB)
	sentimentService = services.NewSentimentService()

	public.POST("/reg", patientRegister)
	public.POST("/log", patientLogin)

	protected.POST("/feed", submitFeedback)
	protected.POST("/media", uploadFeedbackMedia)
}

// patientRegister creates a patient account
func patientRegister(c *gin.Context) {
	var req struct {
		FullName   string `json:"full_name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
		HospitalID string `json:"hospital_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid registration data", "details": err.Error()})
		return
	}

	// Check for existing account
	var existing models.User
	if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Role:         models.RolePatient,
		HospitalID:   strings.TrimSpace(req.HospitalID),
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ Failed to create patient account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.HospitalID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	log.Printf("✅ Patient %d registered for hospital %s", user.ID, user.HospitalID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":          user.ID,
			"full_name":   user.FullName,
			"email":       user.Email,
			"role":        user.Role,
			"hospital_id": user.HospitalID,
		},
	})
}

// patientLogin authenticates a patient
func patientLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if !user.IsPatient() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is inactive"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.HospitalID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, user.HospitalID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate refresh token"})
		return
	}

	log.Printf("✅ Patient %d logged in", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Login successful",
		"token":         token,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":          user.ID,
			"full_name":   user.FullName,
			"email":       user.Email,
			"role":        user.Role,
			"hospital_id": user.HospitalID,
		},
	})
}

// submitFeedback handles a patient feedback submission. The patient and
// hospital identity always come from the authenticated session, never from
// the payload.
func submitFeedback(c *gin.Context) {
	var submission models.FeedbackSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid feedback data", "details": err.Error()})
		return
	}

	submission.PatientID = fmt.Sprintf("%d", c.GetUint("user_id"))
	submission.HospitalID = c.GetString("hospital_id")

	// Text feedback submitted without a precomputed sentiment is scored by
	// the external sentiment service when one is configured.
	if submission.SentimentIndex == nil && submission.Sentiment == "" &&
		submission.ContentTypeIndex == models.ContentTypeText &&
		strings.TrimSpace(submission.TextContent) != "" &&
		sentimentService.Enabled() {
		index, err := sentimentService.ScoreText(submission.TextContent)
		if err != nil {
			log.Printf("⚠️ Sentiment scoring failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Sentiment scoring unavailable, please retry"})
			return
		}
		submission.SentimentIndex = &index
	}

	feedback, err := feedbackStore.Create(submission)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid feedback data", "field": ve.Field, "details": ve.Reason})
			return
		}
		log.Printf("❌ Failed to create feedback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}
