package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/repository"
	"github.com/lumierefi/store_api/internal/utils"
)

// ProfileHandler serves the account profile.
type ProfileHandler struct {
	profiles *repository.ProfileRepository
	users    *repository.UserRepository
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(profiles *repository.ProfileRepository, users *repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users}
}

// GetProfile returns the account's email and display name.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	var fullName *string
	if profile != nil {
		fullName = profile.FullName
	}
	utils.Success(c, 200, "Profile retrieved successfully", gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": fullName,
	})
}

// UpdateProfile writes the account's display name.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.FullName)
	if err := h.profiles.Upsert(c.Request.Context(), c.GetString("user_id"), &name); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update profile")
		return
	}
	utils.Success(c, 200, "Profile updated", gin.H{"fullName": name})
}
