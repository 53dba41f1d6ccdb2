package handler

import (
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
    "github.com/iliyamo/tutor-marketplace/internal/service"
)

// AppointmentHandler serves booking and the appointment lifecycle.
type AppointmentHandler struct {
    Appointments *repository.AppointmentRepo
    Notifier     service.Notifier
    Now          func() time.Time
}

func NewAppointmentHandler(appts *repository.AppointmentRepo, n service.Notifier, now func() time.Time) *AppointmentHandler {
    if appts == nil || n == nil {
        panic("nil dependency passed to NewAppointmentHandler")
    }
    if now == nil {
        now = time.Now
    }
    return &AppointmentHandler{Appointments: appts, Notifier: n, Now: now}
}

type createAppointmentReq struct {
    TutorID   string `json:"tutor_id"`
    Subject   string `json:"subject"`
    Date      string `json:"date"`
    StartTime string `json:"start_time"`
    EndTime   string `json:"end_time"`
}

// Create books a pending appointment for the signed-in student.
func (h *AppointmentHandler) Create(c echo.Context) error {
    var req createAppointmentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    a, err := h.Appointments.Request(middleware.Actor(c), repository.AppointmentRequest{
        TutorID:   req.TutorID,
        Subject:   req.Subject,
        Date:      req.Date,
        StartTime: req.StartTime,
        EndTime:   req.EndTime,
    })
    if err != nil {
        return writeError(c, err)
    }
    notifyUser(c, h.Notifier, a.TutorID, fmt.Sprintf("New %s session request from %s on %s at %s",
        a.Subject, a.StudentName, a.Date, a.StartTime))
    return c.JSON(http.StatusCreated, a)
}

// List returns the signed-in user's appointments.
//   view=all (default) | upcoming | past
func (h *AppointmentHandler) List(c echo.Context) error {
    u, ok := middleware.CurrentUser(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    list := h.Appointments.ListForUser(u.ID, u.Role)
    switch c.QueryParam("view") {
    case "", "all":
        return c.JSON(http.StatusOK, echo.Map{"data": list, "total": len(list)})
    case "upcoming":
        split := h.Appointments.Classify(list, h.Now())
        return c.JSON(http.StatusOK, echo.Map{"data": split.Upcoming, "total": len(split.Upcoming)})
    case "past":
        split := h.Appointments.Classify(list, h.Now())
        return c.JSON(http.StatusOK, echo.Map{"data": split.Past, "total": len(split.Past)})
    }
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "view must be all, upcoming or past"})
}

// Agenda is the tutor dashboard: pending, upcoming and completed sessions.
func (h *AppointmentHandler) Agenda(c echo.Context) error {
    list := h.Appointments.ListForUser(middleware.UserID(c), model.RoleTutor)
    return c.JSON(http.StatusOK, h.Appointments.TutorAgenda(list, h.Now()))
}

type statusReq struct {
    Status string `json:"status"`
}

// SetStatus moves an appointment along its lifecycle.
func (h *AppointmentHandler) SetStatus(c echo.Context) error {
    var req statusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    next := model.AppointmentStatus(req.Status)
    if !next.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }
    actor := middleware.Actor(c)
    a, err := h.Appointments.SetStatus(actor, c.Param("id"), next)
    if err != nil {
        return writeError(c, err)
    }
    other := a.StudentID
    if actor.ID == a.StudentID {
        other = a.TutorID
    }
    notifyUser(c, h.Notifier, other, fmt.Sprintf("Your %s session on %s is now %s", a.Subject, a.Date, a.Status))
    return c.JSON(http.StatusOK, a)
}
