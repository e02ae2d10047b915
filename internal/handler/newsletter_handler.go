package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/repository"
	"github.com/lumierefi/store_api/internal/utils"
)

// NewsletterHandler records newsletter signups.
type NewsletterHandler struct {
	newsletter *repository.NewsletterRepository
}

// NewNewsletterHandler constructs a NewsletterHandler.
func NewNewsletterHandler(newsletter *repository.NewsletterRepository) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe stores an email address. Subscribing twice is not an error.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "A valid email address is required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.newsletter.Subscribe(c.Request.Context(), email); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to subscribe")
		return
	}
	utils.Success(c, 200, "Subscribed to newsletter", gin.H{"email": email})
}
