package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
)

// TutorHandler serves the catalog and the review endpoints.
type TutorHandler struct {
    Tutors  *repository.TutorRepo
    Reviews *repository.ReviewRepo
}

func NewTutorHandler(tutors *repository.TutorRepo, reviews *repository.ReviewRepo) *TutorHandler {
    return &TutorHandler{Tutors: tutors, Reviews: reviews}
}

// Search filters the catalog for the viewer and optionally sorts the result.
//
//   subject, location: case-insensitive substring
//   days:              comma separated weekdays, any-of
//   min_rate, max_rate, min_rating: inclusive bounds
//   sort:              rating | price-low | price-high
func (h *TutorHandler) Search(c echo.Context) error {
    q := repository.TutorSearchQuery{
        Subject:  strings.TrimSpace(c.QueryParam("subject")),
        Location: strings.TrimSpace(c.QueryParam("location")),
        Days:     splitList(c.QueryParam("days")),
    }
    var err error
    if q.MinRate, err = optFloat(c, "min_rate"); err != nil {
        return writeError(c, err)
    }
    if q.MaxRate, err = optFloat(c, "max_rate"); err != nil {
        return writeError(c, err)
    }
    if q.MinRating, err = optFloat(c, "min_rating"); err != nil {
        return writeError(c, err)
    }

    viewer := middleware.UserID(c)
    items := h.Tutors.Search(viewer, q)
    if order := c.QueryParam("sort"); order != "" {
        items = h.Tutors.SortResults(viewer, repository.SortOrder(order))
    }
    return c.JSON(http.StatusOK, echo.Map{"data": items, "total": len(items)})
}

// Results returns the viewer's last search result, optionally re-sorted.
func (h *TutorHandler) Results(c echo.Context) error {
    viewer := middleware.UserID(c)
    var items []model.Tutor
    if order := c.QueryParam("sort"); order != "" {
        items = h.Tutors.SortResults(viewer, repository.SortOrder(order))
    } else {
        items = h.Tutors.Results(viewer)
    }
    return c.JSON(http.StatusOK, echo.Map{"data": items, "total": len(items)})
}

// Get returns one tutor profile with its reviews.
func (h *TutorHandler) Get(c echo.Context) error {
    t, err := h.Tutors.Get(c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, t)
}

// UpdateProfile lets a tutor edit their own profile.
func (h *TutorHandler) UpdateProfile(c echo.Context) error {
    var patch model.TutorPatch
    if err := c.Bind(&patch); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    t, err := h.Tutors.UpdateProfile(middleware.Actor(c), c.Param("id"), patch)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, t)
}

type reviewReq struct {
    Rating  float64 `json:"rating"`
    Comment string  `json:"comment"`
}

// AddReview records a student's review and returns the updated rating.
func (h *TutorHandler) AddReview(c echo.Context) error {
    var req reviewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    rev, t, err := h.Reviews.Add(middleware.Actor(c), c.Param("id"), req.Rating, req.Comment)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"review": rev, "rating": t.Rating})
}

type responseReq struct {
    Response string `json:"response"`
}

// RespondToReview sets the owning tutor's reply on a review.
func (h *TutorHandler) RespondToReview(c echo.Context) error {
    var req responseReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    rev, err := h.Reviews.Respond(middleware.Actor(c), c.Param("id"), c.Param("reviewID"), req.Response)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, rev)
}
