package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medkb/config"
)

func setupAuthRoutes(router *gin.Engine, cfg *config.Config) {
	rg := router.Group("/auth")

	// GET - current session user
	rg.GET("/me", func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session", "code": CodeForbidden})
			return
		}
		c.JSON(http.StatusOK, user)
	})

	// POST - clear the session cookie
	rg.POST("/logout", func(c *gin.Context) {
		c.SetCookie(cfg.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
	})
}
