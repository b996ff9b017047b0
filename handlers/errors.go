package handlers

import (
	"errors"
	"net/http"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/middleware"
	"github.com/JuzzThyne/ERI-backend/obs"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal Server Error"

// errorResponses maps domain errors to a status and a client message.
// Order matters only where one error wraps another.
var errorResponses = []struct {
	err     error
	status  int
	message string
}{
	{catalog.ErrUploadConflict, http.StatusConflict, "Image already exists on the image host"},
	{catalog.ErrDuplicateName, http.StatusBadRequest, "Item already exists!"},
	{catalog.ErrInvalidName, http.StatusBadRequest, "Item name is required"},
	{catalog.ErrInvalidPrice, http.StatusBadRequest, "Item price must be a non-negative number"},
	{catalog.ErrNoImage, http.StatusBadRequest, "At least one image is required"},
	{catalog.ErrTooManyFiles, http.StatusBadRequest, "Too many images"},
	{catalog.ErrNotFound, http.StatusNotFound, "Item not found"},
	{admin.ErrMissingFields, http.StatusBadRequest, "all fields are required"},
	{admin.ErrUsernameTaken, http.StatusBadRequest, "Username already exists"},
	{admin.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{admin.ErrNotFound, http.StatusNotFound, "Admin not found"},
}

// statusFor returns the response status and message for err. Unknown errors
// are internal.
func statusFor(err error) (int, string) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			return r.status, r.message
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		obs.Logger.Error("request_failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", middleware.RequestIDFromContext(c.Request.Context()),
			"error", err,
		)
	}
	c.JSON(status, gin.H{"message": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
