package repository

import (
    "sort"
    "strings"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// TutorSearchQuery holds the optional catalog filters. Zero values impose
// no constraint; every provided filter must match (AND).
type TutorSearchQuery struct {
    Subject   string
    Location  string
    Days      []string
    MinRate   *float64
    MaxRate   *float64
    MinRating *float64
}

// Empty reports whether no filter is set.
func (q TutorSearchQuery) Empty() bool {
    return q.Subject == "" && q.Location == "" && len(q.Days) == 0 &&
        q.MinRate == nil && q.MaxRate == nil && q.MinRating == nil
}

// Match reports whether t satisfies every provided filter.
func (q TutorSearchQuery) Match(t model.Tutor) bool {
    if s := strings.ToLower(strings.TrimSpace(q.Subject)); s != "" {
        hit := false
        for _, subj := range t.Subjects {
            if strings.Contains(strings.ToLower(subj), s) {
                hit = true
                break
            }
        }
        if !hit {
            return false
        }
    }
    if l := strings.ToLower(strings.TrimSpace(q.Location)); l != "" {
        if !strings.Contains(strings.ToLower(t.Location), l) {
            return false
        }
    }
    if len(q.Days) > 0 && !anyDay(q.Days, t.Availability.Days) {
        return false
    }
    if q.MinRate != nil && t.HourlyRate < *q.MinRate {
        return false
    }
    if q.MaxRate != nil && t.HourlyRate > *q.MaxRate {
        return false
    }
    if q.MinRating != nil && t.Rating < *q.MinRating {
        return false
    }
    return true
}

func anyDay(wanted, offered []string) bool {
    for _, w := range wanted {
        for _, o := range offered {
            if strings.EqualFold(strings.TrimSpace(w), o) {
                return true
            }
        }
    }
    return false
}

// SortOrder is a result ordering offered to the listing page.
type SortOrder string

const (
    SortRating    SortOrder = "rating"
    SortPriceLow  SortOrder = "price-low"
    SortPriceHigh SortOrder = "price-high"
)

// sortTutors orders ts in place. Unknown orders leave ts unchanged.
func sortTutors(ts []model.Tutor, order SortOrder) {
    switch order {
    case SortRating:
        sort.SliceStable(ts, func(i, j int) bool { return ts[i].Rating > ts[j].Rating })
    case SortPriceLow:
        sort.SliceStable(ts, func(i, j int) bool { return ts[i].HourlyRate < ts[j].HourlyRate })
    case SortPriceHigh:
        sort.SliceStable(ts, func(i, j int) bool { return ts[i].HourlyRate > ts[j].HourlyRate })
    }
}
