package repository

import (
    "strings"
    "sync"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// DefaultHourlyRate is assigned to profiles created at tutor sign-up.
const DefaultHourlyRate = 30

// TutorRepo is the tutor catalog. It keeps the master list in catalog
// order and, per viewer, the ids of the last search result. Results are
// resolved against the master list on read, so profile edits show up in
// both.
type TutorRepo struct {
    mu      sync.RWMutex
    tutors  []model.Tutor
    index   map[string]int
    results map[string][]string
}

func NewTutorRepo(seed []model.Tutor) *TutorRepo {
    r := &TutorRepo{index: map[string]int{}, results: map[string][]string{}}
    for _, t := range seed {
        r.index[t.ID] = len(r.tutors)
        r.tutors = append(r.tutors, t.Clone())
    }
    return r
}

// List returns the master list in catalog order.
func (r *TutorRepo) List() []model.Tutor {
    r.mu.RLock()
    defer r.mu.RUnlock()
    out := make([]model.Tutor, 0, len(r.tutors))
    for _, t := range r.tutors {
        out = append(out, t.Clone())
    }
    return out
}

// Get returns a single tutor.
func (r *TutorRepo) Get(id string) (model.Tutor, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    i, ok := r.index[id]
    if !ok {
        return model.Tutor{}, ErrNotFound
    }
    return r.tutors[i].Clone(), nil
}

// Exists reports whether id is in the catalog.
func (r *TutorRepo) Exists(id string) bool {
    r.mu.RLock()
    defer r.mu.RUnlock()
    _, ok := r.index[id]
    return ok
}

// Search filters the master list and stores the matching ids as the
// viewer's last result.
func (r *TutorRepo) Search(viewer string, q TutorSearchQuery) []model.Tutor {
    r.mu.Lock()
    defer r.mu.Unlock()
    ids := make([]string, 0, len(r.tutors))
    out := make([]model.Tutor, 0, len(r.tutors))
    for _, t := range r.tutors {
        if q.Match(t) {
            ids = append(ids, t.ID)
            out = append(out, t.Clone())
        }
    }
    r.results[viewer] = ids
    return out
}

// Results returns the viewer's last result, or the full list if the viewer
// has not searched yet.
func (r *TutorRepo) Results(viewer string) []model.Tutor {
    r.mu.RLock()
    defer r.mu.RUnlock()
    return r.resolveLocked(viewer)
}

// SortResults reorders the viewer's last result and keeps the new order.
func (r *TutorRepo) SortResults(viewer string, order SortOrder) []model.Tutor {
    r.mu.Lock()
    defer r.mu.Unlock()
    ts := r.resolveLocked(viewer)
    sortTutors(ts, order)
    ids := make([]string, len(ts))
    for i, t := range ts {
        ids[i] = t.ID
    }
    r.results[viewer] = ids
    return ts
}

func (r *TutorRepo) resolveLocked(viewer string) []model.Tutor {
    ids, ok := r.results[viewer]
    if !ok {
        out := make([]model.Tutor, 0, len(r.tutors))
        for _, t := range r.tutors {
            out = append(out, t.Clone())
        }
        return out
    }
    out := make([]model.Tutor, 0, len(ids))
    for _, id := range ids {
        if i, ok := r.index[id]; ok {
            out = append(out, r.tutors[i].Clone())
        }
    }
    return out
}

// UpdateProfile merges the non-nil fields of p into the tutor. Only the
// tutor that owns the profile may edit it.
func (r *TutorRepo) UpdateProfile(actor model.Actor, id string, p model.TutorPatch) (model.Tutor, error) {
    if actor.Role != model.RoleTutor || actor.ID != id {
        return model.Tutor{}, ErrUnauthorized
    }
    if p.HourlyRate != nil && *p.HourlyRate <= 0 {
        return model.Tutor{}, ErrValidation
    }
    if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
        return model.Tutor{}, ErrValidation
    }
    return r.update(id, func(t *model.Tutor) error {
        applyPatch(t, p)
        return nil
    })
}

func applyPatch(t *model.Tutor, p model.TutorPatch) {
    if p.Name != nil {
        t.Name = strings.TrimSpace(*p.Name)
    }
    if p.ProfileImage != nil {
        t.ProfileImage = *p.ProfileImage
    }
    if p.Subjects != nil {
        t.Subjects = append([]string(nil), p.Subjects...)
    }
    if p.HourlyRate != nil {
        t.HourlyRate = *p.HourlyRate
    }
    if p.Location != nil {
        t.Location = *p.Location
    }
    if p.Availability != nil {
        t.Availability = model.Availability{
            Days:      append([]string(nil), p.Availability.Days...),
            TimeSlots: append([]string(nil), p.Availability.TimeSlots...),
        }
    }
    if p.Qualifications != nil {
        t.Qualifications = append([]string(nil), p.Qualifications...)
    }
    if p.Experience != nil {
        t.Experience = *p.Experience
    }
    if p.Bio != nil {
        t.Bio = *p.Bio
    }
}

// update runs fn against the stored tutor under the write lock. fn may
// reject the change by returning an error, in which case nothing is kept.
func (r *TutorRepo) update(id string, fn func(*model.Tutor) error) (model.Tutor, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    i, ok := r.index[id]
    if !ok {
        return model.Tutor{}, ErrNotFound
    }
    draft := r.tutors[i].Clone()
    if err := fn(&draft); err != nil {
        return model.Tutor{}, err
    }
    r.tutors[i] = draft
    return draft.Clone(), nil
}

// Provision creates an empty profile for a newly registered tutor. It is a
// no-op for non-tutors and for ids already in the catalog.
func (r *TutorRepo) Provision(u model.User) (model.Tutor, bool) {
    if u.Role != model.RoleTutor {
        return model.Tutor{}, false
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, ok := r.index[u.ID]; ok {
        return model.Tutor{}, false
    }
    t := model.Tutor{
        ID:             u.ID,
        Name:           u.Name,
        ProfileImage:   u.Avatar,
        Subjects:       []string{},
        HourlyRate:     DefaultHourlyRate,
        Availability:   model.Availability{Days: []string{}, TimeSlots: []string{}},
        Qualifications: []string{},
        Reviews:        []model.Review{},
    }
    r.index[t.ID] = len(r.tutors)
    r.tutors = append(r.tutors, t)
    return t.Clone(), true
}
