package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/http/handlers"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, authmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/login/phone", ah.PhoneLogin)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/logout", ah.Logout)
	auth.GET("/validate", ah.Validate)

	v := r.Group("/").Use(authmw.WithSession(), cb.Enforce())
	v.GET("/auth/me", ah.Me)

	adm := r.Group("/admin").Use(authmw.WithSession(), cb.Enforce())
	adm.GET("/sessions/by-phone/:phone", ah.SessionsByPhone)

	return r
}
