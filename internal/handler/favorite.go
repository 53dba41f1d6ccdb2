package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
)

type FavoriteHandler struct {
    Favorites *repository.FavoriteRepo
}

func NewFavoriteHandler(favs *repository.FavoriteRepo) *FavoriteHandler {
    return &FavoriteHandler{Favorites: favs}
}

// Toggle flips the favorite mark of a tutor for the signed-in user.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    tutorID := c.Param("tutorID")
    on, err := h.Favorites.Toggle(ctx, middleware.UserID(c), tutorID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"tutor_id": tutorID, "favorite": on})
}

// List returns the favorite tutors in catalog order.
func (h *FavoriteHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    items, err := h.Favorites.ListTutors(ctx, middleware.UserID(c))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"data": items, "total": len(items)})
}
