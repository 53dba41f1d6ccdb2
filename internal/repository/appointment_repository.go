package repository

import (
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// AppointmentRepo is the scheduling ledger. Records keep insertion order
// and are never deleted.
type AppointmentRepo struct {
    mu     sync.RWMutex
    items  []model.Appointment
    index  map[string]int
    tutors *TutorRepo
    loc    *time.Location
}

// NewAppointmentRepo seeds the ledger. loc is the zone used to interpret
// appointment dates and times; nil means time.Local.
func NewAppointmentRepo(seed []model.Appointment, tutors *TutorRepo, loc *time.Location) *AppointmentRepo {
    if loc == nil {
        loc = time.Local
    }
    r := &AppointmentRepo{index: map[string]int{}, tutors: tutors, loc: loc}
    for _, a := range seed {
        r.index[a.ID] = len(r.items)
        r.items = append(r.items, a)
    }
    return r
}

// AppointmentRequest is a student's booking request.
type AppointmentRequest struct {
    TutorID   string
    Subject   string
    Date      string
    StartTime string
    EndTime   string
}

// Request books a pending appointment. Only students may book, and the
// tutor must exist in the catalog.
func (r *AppointmentRepo) Request(student model.Actor, req AppointmentRequest) (model.Appointment, error) {
    if student.Role != model.RoleStudent {
        return model.Appointment{}, ErrUnauthorized
    }
    tutor, err := r.tutors.Get(req.TutorID)
    if err != nil {
        return model.Appointment{}, err
    }
    a := model.Appointment{
        ID:           uuid.NewString(),
        TutorID:      tutor.ID,
        TutorName:    tutor.Name,
        TutorImage:   tutor.ProfileImage,
        StudentID:    student.ID,
        StudentName:  student.Name,
        StudentImage: student.Avatar,
        Subject:      strings.TrimSpace(req.Subject),
        Date:         strings.TrimSpace(req.Date),
        StartTime:    strings.TrimSpace(req.StartTime),
        EndTime:      strings.TrimSpace(req.EndTime),
        Status:       model.StatusPending,
    }
    if a.StudentImage == "" {
        a.StudentImage = DefaultStudentImage
    }
    if a.Subject == "" {
        return model.Appointment{}, ErrValidation
    }
    start, err := a.StartsAt(r.loc)
    if err != nil {
        return model.Appointment{}, ErrValidation
    }
    end, err := a.EndsAt(r.loc)
    if err != nil || !end.After(start) {
        return model.Appointment{}, ErrValidation
    }

    r.mu.Lock()
    defer r.mu.Unlock()
    r.index[a.ID] = len(r.items)
    r.items = append(r.items, a)
    return a, nil
}

// SetStatus moves an appointment along the state machine. Only the two
// parties may change it, and a student may only cancel.
func (r *AppointmentRepo) SetStatus(actor model.Actor, id string, next model.AppointmentStatus) (model.Appointment, error) {
    if !next.Valid() {
        return model.Appointment{}, ErrValidation
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    i, ok := r.index[id]
    if !ok {
        return model.Appointment{}, ErrNotFound
    }
    a := r.items[i]
    switch {
    case actor.Role == model.RoleTutor && actor.ID == a.TutorID:
    case actor.Role == model.RoleStudent && actor.ID == a.StudentID:
        if next != model.StatusCanceled {
            return model.Appointment{}, ErrUnauthorized
        }
    default:
        return model.Appointment{}, ErrUnauthorized
    }
    if !a.Status.CanTransition(next) {
        return model.Appointment{}, ErrInvalidTransition
    }
    a.Status = next
    r.items[i] = a
    return a, nil
}

// Get returns one appointment.
func (r *AppointmentRepo) Get(id string) (model.Appointment, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    i, ok := r.index[id]
    if !ok {
        return model.Appointment{}, ErrNotFound
    }
    return r.items[i], nil
}

// ListForUser returns the appointments where userID is the party for role.
func (r *AppointmentRepo) ListForUser(userID string, role model.Role) []model.Appointment {
    r.mu.RLock()
    defer r.mu.RUnlock()
    out := []model.Appointment{}
    for _, a := range r.items {
        switch {
        case role == model.RoleTutor && a.TutorID == userID,
            role == model.RoleStudent && a.StudentID == userID:
            out = append(out, a)
        }
    }
    return out
}

// DueBetween returns confirmed appointments starting in [from, to).
func (r *AppointmentRepo) DueBetween(from, to time.Time) []model.Appointment {
    r.mu.RLock()
    defer r.mu.RUnlock()
    out := []model.Appointment{}
    for _, a := range r.items {
        if a.Status != model.StatusConfirmed {
            continue
        }
        start, err := a.StartsAt(r.loc)
        if err != nil {
            continue
        }
        if !start.Before(from) && start.Before(to) {
            out = append(out, a)
        }
    }
    return out
}

// Split is the upcoming/past view of a student or tutor.
type Split struct {
    Upcoming []model.Appointment `json:"upcoming"`
    Past     []model.Appointment `json:"past"`
}

// Classify splits list relative to now. Pending appointments are always
// upcoming; confirmed and completed ones are upcoming while their start is
// in the future. Everything else is past.
func (r *AppointmentRepo) Classify(list []model.Appointment, now time.Time) Split {
    out := Split{Upcoming: []model.Appointment{}, Past: []model.Appointment{}}
    for _, a := range list {
        if a.Status == model.StatusPending || (r.future(a, now) &&
            (a.Status == model.StatusConfirmed || a.Status == model.StatusCompleted)) {
            out.Upcoming = append(out.Upcoming, a)
            continue
        }
        out.Past = append(out.Past, a)
    }
    return out
}

// Agenda is the tutor dashboard view.
type Agenda struct {
    Pending   []model.Appointment `json:"pending"`
    Upcoming  []model.Appointment `json:"upcoming"`
    Completed []model.Appointment `json:"completed"`
}

// TutorAgenda groups list into pending requests, confirmed sessions still
// ahead, and sessions that are completed or already started. Canceled
// appointments are left out.
func (r *AppointmentRepo) TutorAgenda(list []model.Appointment, now time.Time) Agenda {
    out := Agenda{
        Pending:   []model.Appointment{},
        Upcoming:  []model.Appointment{},
        Completed: []model.Appointment{},
    }
    for _, a := range list {
        switch a.Status {
        case model.StatusPending:
            out.Pending = append(out.Pending, a)
        case model.StatusConfirmed:
            if r.future(a, now) {
                out.Upcoming = append(out.Upcoming, a)
            } else {
                out.Completed = append(out.Completed, a)
            }
        case model.StatusCompleted:
            out.Completed = append(out.Completed, a)
        }
    }
    return out
}

func (r *AppointmentRepo) future(a model.Appointment, now time.Time) bool {
    start, err := a.StartsAt(r.loc)
    return err == nil && start.After(now)
}
