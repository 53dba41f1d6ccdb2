package model

import (
    "fmt"
    "strings"
    "time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
    StatusPending   AppointmentStatus = "pending"
    StatusConfirmed AppointmentStatus = "confirmed"
    StatusCanceled  AppointmentStatus = "canceled"
    StatusCompleted AppointmentStatus = "completed"
)

// transitions lists the statuses reachable from each state. Completed and
// canceled have no entry and are terminal.
var transitions = map[AppointmentStatus][]AppointmentStatus{
    StatusPending:   {StatusConfirmed, StatusCanceled},
    StatusConfirmed: {StatusCompleted, StatusCanceled},
}

// Valid reports whether s is one of the four known statuses.
func (s AppointmentStatus) Valid() bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
        return true
    }
    return false
}

// CanTransition reports whether moving from s to next is allowed.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
    for _, allowed := range transitions[s] {
        if allowed == next {
            return true
        }
    }
    return false
}

// Terminal reports whether no further transitions are possible.
func (s AppointmentStatus) Terminal() bool { return len(transitions[s]) == 0 }

// Appointment is a booked tutoring session. Tutor and student display
// fields are copied at booking time and are not re-synced.
type Appointment struct {
    ID           string            `json:"id"`
    TutorID      string            `json:"tutor_id"`
    TutorName    string            `json:"tutor_name"`
    TutorImage   string            `json:"tutor_image"`
    StudentID    string            `json:"student_id"`
    StudentName  string            `json:"student_name"`
    StudentImage string            `json:"student_image"`
    Subject      string            `json:"subject"`
    Date         string            `json:"date"`       // YYYY-MM-DD
    StartTime    string            `json:"start_time"` // 10:00 AM or 10:00
    EndTime      string            `json:"end_time"`
    Status       AppointmentStatus `json:"status"`
}

const DateLayout = "2006-01-02"

var clockLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseClock parses a wall-clock time such as "10:00 AM" or "14:30" and
// returns the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
    s = strings.ToUpper(strings.TrimSpace(s))
    for _, layout := range clockLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
        }
    }
    return 0, fmt.Errorf("invalid time %q", s)
}

func (a Appointment) at(clock string, loc *time.Location) (time.Time, error) {
    day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(a.Date), loc)
    if err != nil {
        return time.Time{}, fmt.Errorf("invalid date %q", a.Date)
    }
    off, err := ParseClock(clock)
    if err != nil {
        return time.Time{}, err
    }
    return day.Add(off), nil
}

// StartsAt combines Date and StartTime in loc.
func (a Appointment) StartsAt(loc *time.Location) (time.Time, error) {
    return a.at(a.StartTime, loc)
}

// EndsAt combines Date and EndTime in loc.
func (a Appointment) EndsAt(loc *time.Location) (time.Time, error) {
    return a.at(a.EndTime, loc)
}
