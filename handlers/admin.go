package handlers

import (
	"errors"
	"net/http"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/middleware"
	"github.com/JuzzThyne/ERI-backend/models"

	"github.com/gin-gonic/gin"
)

// RegisterAdmin creates an admin account
func (h *Handler) RegisterAdmin(c *gin.Context) {
	var input models.AdminRegister

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "all fields are required")
		return
	}

	if _, err := h.admins.Register(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration successful",
	})
}

// LoginAdmin checks credentials and returns a bearer token
func (h *Handler) LoginAdmin(c *gin.Context) {
	var input models.AdminLogin

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	token, err := h.admins.Login(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, admin.ErrMissingFields) {
			badRequest(c, "Username and password are required")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// LogoutAdmin acknowledges a logout. Tokens are stateless, so the client
// discards its own copy.
func (h *Handler) LogoutAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// GetAdmin returns the caller's profile
func (h *Handler) GetAdmin(c *gin.Context) {
	a, err := h.admins.Profile(c.Request.Context(), middleware.AdminID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "successful",
		"adminInfo": gin.H{
			"adminId":   a.ID,
			"adminName": a.AdminName,
		},
	})
}
