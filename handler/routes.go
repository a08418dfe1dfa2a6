package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shruti0731/MiniProject2/middleware"
)

// RegisterRoutes mounts the session API on api. submitGuards run only in front
// of the submit route, the one that reaches the OCR backend.
func RegisterRoutes(api *gin.RouterGroup, h *SessionHandler, submitGuards ...gin.HandlerFunc) {
	api.POST("/sessions", h.Create)

	sessions := api.Group("/sessions/:id")
	sessions.Use(middleware.SessionID())
	{
		sessions.GET("", h.Get)
		sessions.DELETE("", h.Delete)
		sessions.PUT("/mode", h.SetMode)
		sessions.POST("/file", h.SelectFile)
		sessions.DELETE("/file", h.ClearFile)
		sessions.PUT("/text", h.SetText)

		submit := append(append([]gin.HandlerFunc{}, submitGuards...), h.Submit)
		sessions.POST("/submit", submit...)
	}
}
