package handler

import (
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
    "github.com/iliyamo/tutor-marketplace/internal/service"
)

type MessageHandler struct {
    Messages  *repository.MessageRepo
    Directory repository.Directory
    Notifier  service.Notifier
}

func NewMessageHandler(msgs *repository.MessageRepo, dir repository.Directory, n service.Notifier) *MessageHandler {
    if msgs == nil || dir == nil || n == nil {
        panic("nil dependency passed to NewMessageHandler")
    }
    return &MessageHandler{Messages: msgs, Directory: dir, Notifier: n}
}

type sendReq struct {
    ReceiverID string `json:"receiver_id"`
    Content    string `json:"content"`
}

func (h *MessageHandler) Send(c echo.Context) error {
    var req sendReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    m, err := h.Messages.Send(middleware.Actor(c), req.ReceiverID, req.Content)
    if err != nil {
        return writeError(c, err)
    }
    notifyUser(c, h.Notifier, m.ReceiverID, fmt.Sprintf("New message from %s", m.SenderName))
    return c.JSON(http.StatusCreated, m)
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
    m, err := h.Messages.MarkRead(middleware.Actor(c), c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, m)
}

// Conversations lists the caller's conversations, newest first, with the
// partner resolved against the catalog and the account list.
func (h *MessageHandler) Conversations(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    userID := middleware.UserID(c)
    items := h.Messages.ConversationsFor(ctx, userID, h.Directory)
    return c.JSON(http.StatusOK, echo.Map{
        "data":   items,
        "total":  len(items),
        "unread": h.Messages.UnreadFor(userID),
    })
}

func (h *MessageHandler) ConversationMessages(c echo.Context) error {
    items, err := h.Messages.ConversationMessages(middleware.Actor(c), c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"data": items, "total": len(items)})
}

// MarkConversationRead marks every message addressed to the caller in the
// conversation as read.
func (h *MessageHandler) MarkConversationRead(c echo.Context) error {
    n, err := h.Messages.MarkConversationRead(middleware.Actor(c), c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"marked": n})
}
