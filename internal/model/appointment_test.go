package model

import (
    "testing"
    "time"
)

func TestStatusTransitions(t *testing.T) {
    allowed := map[[2]AppointmentStatus]bool{
        {StatusPending, StatusConfirmed}:   true,
        {StatusPending, StatusCanceled}:    true,
        {StatusConfirmed, StatusCompleted}: true,
        {StatusConfirmed, StatusCanceled}:  true,
    }
    all := []AppointmentStatus{StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted}
    for _, from := range all {
        for _, to := range all {
            if got := from.CanTransition(to); got != allowed[[2]AppointmentStatus{from, to}] {
                t.Fatalf("%s -> %s: got %v", from, to, got)
            }
        }
    }
    if !StatusCompleted.Terminal() || !StatusCanceled.Terminal() || StatusPending.Terminal() {
        t.Fatal("terminal states wrong")
    }
    if AppointmentStatus("done").Valid() {
        t.Fatal("unknown status reported valid")
    }
}

func TestParseClock(t *testing.T) {
    cases := map[string]time.Duration{
        "10:00 AM": 10 * time.Hour,
        "1:30 pm":  13*time.Hour + 30*time.Minute,
        "2:15PM":   14*time.Hour + 15*time.Minute,
        "09:45":    9*time.Hour + 45*time.Minute,
        "12:00 AM": 0,
    }
    for in, want := range cases {
        got, err := ParseClock(in)
        if err != nil || got != want {
            t.Fatalf("ParseClock(%q) = %v, %v; want %v", in, got, err, want)
        }
    }
    if _, err := ParseClock("25:00"); err == nil {
        t.Fatal("expected error for 25:00")
    }
}

func TestStartsAt(t *testing.T) {
    a := Appointment{Date: "2023-05-25", StartTime: "10:00 AM", EndTime: "11:30 AM"}
    start, err := a.StartsAt(time.UTC)
    if err != nil {
        t.Fatalf("StartsAt: %v", err)
    }
    if want := time.Date(2023, 5, 25, 10, 0, 0, 0, time.UTC); !start.Equal(want) {
        t.Fatalf("start = %v, want %v", start, want)
    }
    end, _ := a.EndsAt(time.UTC)
    if end.Sub(start) != 90*time.Minute {
        t.Fatalf("duration = %v", end.Sub(start))
    }
}
