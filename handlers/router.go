package handlers

import (
	"net/http"

	"github.com/JuzzThyne/ERI-backend/middleware"

	"github.com/gin-gonic/gin"
)

const welcomeMessage = "Welcome to Elea Random Items"

// NewRouter wires every route. Everything except the welcome page, the
// health check, registration and login needs a bearer token.
func NewRouter(d Deps) *gin.Engine {
	h := New(d)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORSMiddleware(d.CORSOrigins))
	if d.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = d.MaxUploadBytes
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, welcomeMessage)
	})
	r.GET("/health-check", h.CheckConnection)
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	// Public admin routes
	r.POST("/admin/add", h.RegisterAdmin)
	r.POST("/admin/login", h.LoginAdmin)

	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.Tokens))
	{
		auth.POST("/admin/logout", h.LogoutAdmin)
		auth.GET("/admin", h.GetAdmin)

		auth.GET("/items", h.ListItems)
		auth.POST("/items", h.CreateItem)
		auth.GET("/items/:id", h.GetItem)
		auth.PUT("/items/:id", h.UpdateItem)
		auth.DELETE("/items/:id", h.DeleteItem)
	}

	return r
}
