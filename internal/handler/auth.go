package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/config"
    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/service"
    "github.com/iliyamo/tutor-marketplace/internal/utils"
)

// AuthHandler bundles dependencies for the identity endpoints.
type AuthHandler struct {
    Cfg      config.Config
    Identity *service.IdentityService
    Inbox    *service.Recorder
}

func NewAuthHandler(cfg config.Config, identity *service.IdentityService, inbox *service.Recorder) *AuthHandler {
    if identity == nil || inbox == nil {
        panic("nil dependency passed to NewAuthHandler")
    }
    return &AuthHandler{Cfg: cfg, Identity: identity, Inbox: inbox}
}

// ----- DTOs -----

type registerReq struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role"` // student | tutor
}

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role"`
}

type profileReq struct {
    Name   string `json:"name"`
    Avatar string `json:"avatar"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

type authResp struct {
    User   model.User `json:"user"`
    Access tokenPart  `json:"access"`
}

// Register creates an account, signs it in on a new session and returns an
// access token for that session.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    role := model.ParseRole(req.Role)
    if role == model.RoleNone {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be student or tutor"})
    }
    if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    session := service.NewSessionID()
    u, err := h.Identity.SignUp(ctx, session, req.Name, req.Email, req.Password, role)
    if err != nil {
        return h.fail(c, err, req.Email)
    }
    return h.issue(c, http.StatusCreated, u, session)
}

// Login verifies credentials for the requested role and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Email) == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    session := service.NewSessionID()
    u, err := h.Identity.SignIn(ctx, session, req.Email, req.Password, model.ParseRole(req.Role))
    if err != nil {
        return h.fail(c, err, req.Email)
    }
    return h.issue(c, http.StatusOK, u, session)
}

// fail writes err together with the notifications raised for email. A
// caller without a session has no other way to collect them.
func (h *AuthHandler) fail(c echo.Context, err error, email string) error {
    code, msg := errorStatus(err)
    if code == http.StatusInternalServerError {
        c.Logger().Error(err)
    }
    notes := h.Inbox.Drain(model.EmailAudience(model.NormalizeEmail(email)))
    return c.JSON(code, echo.Map{"error": msg, "notifications": notes})
}

func (h *AuthHandler) issue(c echo.Context, status int, u model.User, session string) error {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, utils.Claims{
        UserID:    u.ID,
        Role:      string(u.Role),
        SessionID: session,
    }, h.Cfg.AccessTTLMin, time.Now())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    return c.JSON(status, authResp{
        User:   u,
        Access: tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Logout ends the session bound to the access token. Tokens for that
// session stop working immediately, so whatever the session still had
// pending, the sign-out notice included, is returned here.
func (h *AuthHandler) Logout(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    session := middleware.SessionID(c)
    h.Identity.SignOut(ctx, session)
    return c.JSON(http.StatusOK, echo.Map{"notifications": h.Inbox.Drain(model.SessionAudience(session))})
}

// Me returns the signed-in identity.
func (h *AuthHandler) Me(c echo.Context) error {
    u, ok := middleware.CurrentUser(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, u)
}

// UpdateMe edits the signed-in user's display name and avatar.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
    var req profileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Identity.UpdateProfile(ctx, middleware.SessionID(c), req.Name, req.Avatar)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, u)
}

// Notifications drains the pending notifications of the session and of the
// signed-in user.
func (h *AuthHandler) Notifications(c echo.Context) error {
    items := h.Inbox.Drain(
        model.SessionAudience(middleware.SessionID(c)),
        model.UserAudience(middleware.UserID(c)),
    )
    return c.JSON(http.StatusOK, echo.Map{"data": items})
}
