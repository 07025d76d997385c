package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-feedback-server/database"
	"hospital-feedback-server/models"
	"hospital-feedback-server/services"
	"hospital-feedback-server/store"
	"hospital-feedback-server/utils"
)

// RegisterAdminRoutes registers admin auth and dashboard endpoints
func RegisterAdminRoutes(rg *gin.RouterGroup) {
	if feedbackStore == nil {
		feedbackStore = store.NewFeedbackStore(database.DB)
	}

	rg.POST("/reg", adminRegister)
	rg.POST("/log", AdminLogin)
	rg.POST("/refresh", AdminRefreshToken)

	protected := rg.Group("")
	protected.Use(AdminAuthMiddleware())
	{
		protected.GET("/fetchAll", fetchAllFeedback)
		protected.GET("/fetchTopics", fetchTopics)
		protected.GET("/fetchDep", fetchDepartments)
		protected.POST("/deptAna", departmentAnalysis)
		protected.GET("/feedbacks/:id", getFeedbackByID)
		protected.POST("/feedbacks/:id/respond", respondToFeedback)
	}
}

// AdminAuthMiddleware validates admin tokens and pins the tenant scope
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Remove "Bearer " prefix
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		// Verify token
		claims, err := utils.VerifyToken(token)
		if err != nil {
			log.Printf("❌ Token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Get user from database
		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			log.Printf("❌ User not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		// Check if user is admin
		if !user.IsAdmin() {
			log.Printf("❌ User %d is not admin, role: %s", user.ID, user.Role)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		// Check if user is active
		if !user.IsActive {
			log.Printf("❌ Admin user %d is inactive", user.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			c.Abort()
			return
		}

		// The tenant scope for every query below comes from the stored admin
		// account, never from request input.
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("hospital_id", user.HospitalID)
		c.Next()
	}
}

// adminRegister creates an admin account
func adminRegister(c *gin.Context) {
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

	var existing models.User
	if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		HospitalID:   strings.TrimSpace(req.HospitalID),
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ Failed to create admin account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	log.Printf("✅ Admin %d registered for hospital %s", user.ID, user.HospitalID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user": gin.H{
			"id":          user.ID,
			"full_name":   user.FullName,
			"email":       user.Email,
			"role":        user.Role,
			"hospital_id": user.HospitalID,
		},
	})
}

// AdminLogin handles admin login
func AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Find user by email
	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		log.Printf("❌ Admin login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Check if user is admin
	if !user.IsAdmin() {
		log.Printf("❌ Login attempt by non-admin user %d with role %s", user.ID, user.Role)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin access required"})
		return
	}

	// Check if user is active
	if !user.IsActive {
		log.Printf("❌ Login attempt by inactive admin user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
		return
	}

	// Verify password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Printf("❌ Invalid password for admin user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Generate tokens
	token, err := utils.GenerateToken(user.ID, user.HospitalID, string(user.Role))
	if err != nil {
		log.Printf("❌ Failed to generate token for admin user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, user.HospitalID, string(user.Role))
	if err != nil {
		log.Printf("❌ Failed to generate refresh token for admin user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	log.Printf("✅ Admin user %d logged in successfully", user.ID)

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
			"is_active":   user.IsActive,
			"created_at":  user.CreatedAt,
		},
	})
}

// AdminRefreshToken handles admin token refresh
func AdminRefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Verify refresh token
	claims, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		log.Printf("❌ Refresh token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// Get user from database
	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		log.Printf("❌ User not found: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsAdmin() || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin access required"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.HospitalID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// fetchAllFeedback returns the admin's filtered feedback list plus every
// dashboard aggregate in one payload
func fetchAllFeedback(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")
	departmentFilter := c.DefaultQuery("department", services.DepartmentFilterAll)

	records, err := services.ResolveView(feedbackStore, hospitalID, departmentFilter)
	if err != nil {
		log.Printf("❌ Failed to fetch feedback for hospital %s: %v", hospitalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch feedback"})
		return
	}

	sentiment := services.CountBySentiment(records)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"feedbacks": records,
			"statistics": gin.H{
				"total_feedback":         len(records),
				"sentiment":              sentiment,
				"topic_distribution":     services.TopicDistribution(records),
				"department_performance": services.DepartmentPerformance(records),
				"monthly_trend":          services.MonthlyTrend(records),
			},
		},
	})
}

// fetchTopics returns the topic distribution for the tenant
func fetchTopics(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")
	departmentFilter := c.DefaultQuery("department", services.DepartmentFilterAll)

	records, err := services.ResolveView(feedbackStore, hospitalID, departmentFilter)
	if err != nil {
		log.Printf("❌ Failed to fetch topics for hospital %s: %v", hospitalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch topics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.TopicDistribution(records),
	})
}

// fetchDepartments returns the department reference list for the tenant
func fetchDepartments(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")

	var departments []models.Department
	if err := database.DB.
		Where("hospital_id = ? AND is_active = ?", hospitalID, true).
		Order("sort_order ASC").
		Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    departments,
	})
}

// departmentAnalysis returns the per-department sentiment matrix, optionally
// narrowed to a single department
func departmentAnalysis(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")

	var req struct {
		DepartmentID string `json:"department_id"`
	}
	// Empty body means the whole hospital
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	filter := req.DepartmentID
	if filter == "" {
		filter = services.DepartmentFilterAll
	}

	records, err := services.ResolveView(feedbackStore, hospitalID, filter)
	if err != nil {
		log.Printf("❌ Failed department analysis for hospital %s: %v", hospitalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to analyze departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"department_performance": services.DepartmentPerformance(records),
			"monthly_trend":          services.MonthlyTrend(records),
			"total_feedback":         len(records),
		},
	})
}

// getFeedbackByID returns a single feedback record within the admin's tenant
func getFeedbackByID(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid feedback ID"})
		return
	}

	feedback, err := feedbackStore.GetByID(hospitalID, uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedback,
	})
}

// respondToFeedback attaches an administrator's reply to a feedback record
func respondToFeedback(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid feedback ID"})
		return
	}

	var req struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	feedback, err := feedbackStore.AttachResponse(hospitalID, uint(id), req.Response)
	if err != nil {
		var ve *store.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid response", "field": ve.Field, "details": ve.Reason})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Feedback not found"})
		default:
			log.Printf("❌ Failed to attach response to feedback %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save response"})
		}
		return
	}

	log.Printf("✅ Admin %d responded to feedback %d", c.GetUint("user_id"), feedback.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Response saved successfully",
		"data":    feedback,
	})
}
