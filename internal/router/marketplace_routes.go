package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/handler"
    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// RegisterScheduling registers booking and the appointment lifecycle.
func RegisterScheduling(e *echo.Echo, h *handler.AppointmentHandler, g Guard) {
    grp := e.Group("/v1/appointments", middleware.JWTAuth(g.Secret, g.Sessions))
    grp.POST("", h.Create, middleware.RequireRole(model.RoleStudent))
    grp.GET("", h.List)
    grp.GET("/agenda", h.Agenda, middleware.RequireRole(model.RoleTutor))
    grp.PATCH("/:id/status", h.SetStatus)
}

// RegisterFavorites registers the per-user favorites set.
func RegisterFavorites(e *echo.Echo, h *handler.FavoriteHandler, g Guard) {
    grp := e.Group("/v1/favorites", middleware.JWTAuth(g.Secret, g.Sessions))
    grp.GET("", h.List)
    grp.POST("/:tutorID/toggle", h.Toggle)
}

// RegisterMessaging registers direct messages and conversations.
func RegisterMessaging(e *echo.Echo, h *handler.MessageHandler, g Guard) {
    auth := middleware.JWTAuth(g.Secret, g.Sessions)

    msgs := e.Group("/v1/messages", auth)
    msgs.POST("", h.Send)
    msgs.POST("/:id/read", h.MarkRead)

    convs := e.Group("/v1/conversations", auth)
    convs.GET("", h.Conversations)
    convs.GET("/:id/messages", h.ConversationMessages)
    convs.POST("/:id/read", h.MarkConversationRead)
}
