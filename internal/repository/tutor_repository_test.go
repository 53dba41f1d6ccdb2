package repository

import (
    "errors"
    "testing"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/seed"
)

func f64(v float64) *float64 { return &v }

func ids(ts []model.Tutor) []string {
    out := make([]string, len(ts))
    for i, t := range ts {
        out[i] = t.ID
    }
    return out
}

func sameIDs(got, want []string) bool {
    if len(got) != len(want) {
        return false
    }
    for i := range got {
        if got[i] != want[i] {
            return false
        }
    }
    return true
}

func TestSearch_SubjectAndLocation(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    got := r.Search("v", TutorSearchQuery{Subject: "Math", Location: "york"})
    if !sameIDs(ids(got), []string{"1"}) {
        t.Fatalf("expected only tutor 1, got %v", ids(got))
    }
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    got := r.Search("v", TutorSearchQuery{})
    if !sameIDs(ids(got), []string{"1", "2", "3", "4", "5"}) {
        t.Fatalf("expected catalog order, got %v", ids(got))
    }
}

func TestSearch_FiltersAreConjunctive(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    q := TutorSearchQuery{Days: []string{"saturday"}, MaxRate: f64(40)}
    got := r.Search("v", q)
    if !sameIDs(ids(got), []string{"4"}) {
        t.Fatalf("expected tutor 4, got %v", ids(got))
    }
    for _, tu := range got {
        if !q.Match(tu) {
            t.Fatalf("result %s does not satisfy the query", tu.ID)
        }
    }

    got = r.Search("v", TutorSearchQuery{MinRate: f64(40), MaxRate: f64(45), MinRating: f64(4.85)})
    if !sameIDs(ids(got), []string{"2"}) {
        t.Fatalf("expected tutor 2, got %v", ids(got))
    }
}

func TestSearch_NoMatchIsEmptyNotNil(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    got := r.Search("v", TutorSearchQuery{Subject: "Underwater Basket Weaving"})
    if got == nil || len(got) != 0 {
        t.Fatalf("expected empty slice, got %#v", got)
    }
    if res := r.Results("v"); len(res) != 0 {
        t.Fatalf("expected empty stored result, got %v", ids(res))
    }
}

func TestSortResults(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    r.Search("v", TutorSearchQuery{})

    if got := ids(r.SortResults("v", SortPriceLow)); !sameIDs(got, []string{"3", "4", "1", "2", "5"}) {
        t.Fatalf("price-low: %v", got)
    }
    if got := ids(r.SortResults("v", SortPriceHigh)); !sameIDs(got, []string{"5", "2", "1", "4", "3"}) {
        t.Fatalf("price-high: %v", got)
    }
    // 2 and 5 tie at 4.9; the stable sort keeps 5 ahead because price-high put it first.
    if got := ids(r.SortResults("v", SortRating)); !sameIDs(got, []string{"5", "2", "1", "3", "4"}) {
        t.Fatalf("rating: %v", got)
    }
    if got := ids(r.Results("v")); !sameIDs(got, []string{"5", "2", "1", "3", "4"}) {
        t.Fatalf("sorted order not kept: %v", got)
    }
}

func TestResults_PerViewer(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    r.Search("alice", TutorSearchQuery{Location: "Boston"})

    if got := ids(r.Results("alice")); !sameIDs(got, []string{"2"}) {
        t.Fatalf("alice: %v", got)
    }
    if got := r.Results("bob"); len(got) != 5 {
        t.Fatalf("bob has not searched and should see the full list, got %d", len(got))
    }
}

func TestUpdateProfile_OwnerOnly(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    rate := 55.0

    _, err := r.UpdateProfile(model.Actor{ID: "2", Role: model.RoleTutor}, "1", model.TutorPatch{HourlyRate: &rate})
    if !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("expected ErrUnauthorized, got %v", err)
    }
    _, err = r.UpdateProfile(model.Actor{ID: "1", Role: model.RoleStudent}, "1", model.TutorPatch{HourlyRate: &rate})
    if !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("student edit: expected ErrUnauthorized, got %v", err)
    }

    r.Search("v", TutorSearchQuery{Subject: "Statistics"})
    up, err := r.UpdateProfile(model.Actor{ID: "1", Role: model.RoleTutor}, "1", model.TutorPatch{HourlyRate: &rate})
    if err != nil {
        t.Fatalf("UpdateProfile: %v", err)
    }
    if up.HourlyRate != 55 || up.Name != "Dr. Emily Johnson" {
        t.Fatalf("unexpected profile after patch: %+v", up)
    }
    // The stored search result resolves to the edited profile.
    if res := r.Results("v"); len(res) != 1 || res[0].HourlyRate != 55 {
        t.Fatalf("result not refreshed: %+v", res)
    }
}

func TestUpdateProfile_RejectsBadValues(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    owner := model.Actor{ID: "1", Role: model.RoleTutor}
    zero := 0.0
    if _, err := r.UpdateProfile(owner, "1", model.TutorPatch{HourlyRate: &zero}); !errors.Is(err, ErrValidation) {
        t.Fatalf("expected ErrValidation, got %v", err)
    }
    blank := "  "
    if _, err := r.UpdateProfile(owner, "1", model.TutorPatch{Name: &blank}); !errors.Is(err, ErrValidation) {
        t.Fatalf("expected ErrValidation, got %v", err)
    }
}

func TestGet_ReturnsCopy(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    tu, err := r.Get("1")
    if err != nil {
        t.Fatalf("Get: %v", err)
    }
    tu.Subjects[0] = "Changed"
    again, _ := r.Get("1")
    if again.Subjects[0] != "Mathematics" {
        t.Fatalf("caller mutated the catalog")
    }
    if _, err := r.Get("999"); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}

func TestProvision(t *testing.T) {
    r := NewTutorRepo(seed.Tutors())
    tu, ok := r.Provision(model.User{ID: "u-9", Name: "New Tutor", Role: model.RoleTutor})
    if !ok || tu.HourlyRate != DefaultHourlyRate || len(tu.Reviews) != 0 {
        t.Fatalf("unexpected provisioned profile: %+v ok=%v", tu, ok)
    }
    if _, ok := r.Provision(model.User{ID: "u-9", Role: model.RoleTutor}); ok {
        t.Fatalf("second provision should be a no-op")
    }
    if _, ok := r.Provision(model.User{ID: "u-10", Role: model.RoleStudent}); ok {
        t.Fatalf("students get no profile")
    }
    if len(r.List()) != 6 {
        t.Fatalf("expected 6 tutors, got %d", len(r.List()))
    }
}
