package repository

import (
    "math"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// DefaultStudentImage is used when the reviewing student has no avatar.
const DefaultStudentImage = "https://i.pravatar.cc/150?img=12"

// ReviewRepo appends reviews to tutor profiles held by a TutorRepo and
// keeps each tutor's rating in step.
type ReviewRepo struct {
    tutors *TutorRepo
    now    func() time.Time
}

func NewReviewRepo(tutors *TutorRepo, now func() time.Time) *ReviewRepo {
    if now == nil {
        now = time.Now
    }
    return &ReviewRepo{tutors: tutors, now: now}
}

// Add appends a review by a student and recomputes the tutor rating as the
// mean of all review ratings rounded to one decimal.
func (r *ReviewRepo) Add(author model.Actor, tutorID string, rating float64, comment string) (model.Review, model.Tutor, error) {
    if author.Role != model.RoleStudent {
        return model.Review{}, model.Tutor{}, ErrUnauthorized
    }
    comment = strings.TrimSpace(comment)
    if !validRating(rating) || comment == "" {
        return model.Review{}, model.Tutor{}, ErrValidation
    }
    img := author.Avatar
    if img == "" {
        img = DefaultStudentImage
    }
    rev := model.Review{
        ID:           uuid.NewString(),
        StudentID:    author.ID,
        StudentName:  author.Name,
        StudentImage: img,
        Rating:       rating,
        Comment:      comment,
        Date:         r.now().Format(model.DateLayout),
    }
    t, err := r.tutors.update(tutorID, func(t *model.Tutor) error {
        sum := rating
        for _, existing := range t.Reviews {
            sum += existing.Rating
        }
        t.Rating = Round1(sum / float64(len(t.Reviews)+1))
        t.Reviews = append(t.Reviews, rev)
        return nil
    })
    if err != nil {
        return model.Review{}, model.Tutor{}, err
    }
    return rev, t, nil
}

// Respond sets the tutor's response on one of their reviews, replacing any
// earlier response.
func (r *ReviewRepo) Respond(actor model.Actor, tutorID, reviewID, text string) (model.Review, error) {
    if actor.Role != model.RoleTutor || actor.ID != tutorID {
        return model.Review{}, ErrUnauthorized
    }
    text = strings.TrimSpace(text)
    if text == "" {
        return model.Review{}, ErrValidation
    }
    var out model.Review
    _, err := r.tutors.update(tutorID, func(t *model.Tutor) error {
        for i := range t.Reviews {
            if t.Reviews[i].ID == reviewID {
                t.Reviews[i].Response = text
                out = t.Reviews[i]
                return nil
            }
        }
        return ErrNotFound
    })
    return out, err
}

// validRating accepts 0..5 in half steps.
func validRating(v float64) bool {
    if v < 0 || v > 5 || math.IsNaN(v) {
        return false
    }
    return v*2 == math.Trunc(v*2)
}

// Round1 rounds v to one decimal place. The exact binary value of v is
// rounded, so a mean stored as 4.3499999... gives 4.3; exact halves go up.
func Round1(v float64) float64 {
    if t := v * 20; t == math.Trunc(t) && math.Mod(t, 2) != 0 && math.FMA(v, 20, -t) == 0 {
        return math.Ceil(v*10) / 10
    }
    r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
    return r
}
