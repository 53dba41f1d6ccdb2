package service

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/robfig/cron/v3"
    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
)

// DueLister returns confirmed appointments starting in [from, to).
type DueLister interface {
    DueBetween(from, to time.Time) []model.Appointment
}

var _ DueLister = (*repository.AppointmentRepo)(nil)

// ReminderJob notifies both parties of confirmed appointments that start
// roughly Lead from now. Each appointment is reminded once.
type ReminderJob struct {
    appts    DueLister
    notifier Notifier
    log      *zap.Logger
    lead     time.Duration
    window   time.Duration
    now      func() time.Time

    mu   sync.Mutex
    sent map[string]bool
    cron *cron.Cron
}

func NewReminderJob(appts DueLister, notifier Notifier, log *zap.Logger, lead, window time.Duration, now func() time.Time) *ReminderJob {
    if now == nil {
        now = time.Now
    }
    return &ReminderJob{
        appts:    appts,
        notifier: notifier,
        log:      log,
        lead:     lead,
        window:   window,
        now:      now,
        sent:     map[string]bool{},
    }
}

// Start schedules RunOnce with a standard five-field cron expression.
func (j *ReminderJob) Start(schedule string) error {
    c := cron.New()
    if _, err := c.AddFunc(schedule, func() { j.RunOnce(context.Background()) }); err != nil {
        return fmt.Errorf("add reminder job: %w", err)
    }
    j.cron = c
    c.Start()
    j.log.Info("appointment reminder scheduled", zap.String("schedule", schedule), zap.Duration("lead", j.lead))
    return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (j *ReminderJob) Stop() {
    if j.cron == nil {
        return
    }
    <-j.cron.Stop().Done()
}

// RunOnce sends the reminders that are due and returns how many
// appointments were reminded.
func (j *ReminderJob) RunOnce(ctx context.Context) int {
    now := j.now()
    from := now.Add(j.lead - j.window)
    to := now.Add(j.lead + j.window)
    due := j.appts.DueBetween(from, to)

    n := 0
    for _, a := range due {
        j.mu.Lock()
        done := j.sent[a.ID]
        j.sent[a.ID] = true
        j.mu.Unlock()
        if done {
            continue
        }
        msg := fmt.Sprintf("Reminder: %s session on %s at %s", a.Subject, a.Date, a.StartTime)
        for _, who := range []struct{ id, with string }{{a.StudentID, a.TutorName}, {a.TutorID, a.StudentName}} {
            err := j.notifier.Notify(ctx, model.Notification{
                Audience:  model.UserAudience(who.id),
                Level:     model.LevelInfo,
                Message:   msg + " with " + who.with,
                CreatedAt: now,
            })
            if err != nil {
                j.log.Warn("send reminder failed", zap.String("appointment_id", a.ID), zap.Error(err))
            }
        }
        n++
    }
    if n > 0 {
        j.log.Info("appointment reminders sent", zap.Int("count", n))
    }
    return n
}
