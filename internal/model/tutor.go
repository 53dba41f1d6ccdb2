package model

// Availability lists the weekdays and free-form time slots a tutor offers.
type Availability struct {
    Days      []string `json:"days"`
    TimeSlots []string `json:"time_slots"`
}

// Review is a student's rating of a tutor. Only Response changes after
// creation.
type Review struct {
    ID           string  `json:"id"`
    StudentID    string  `json:"student_id"`
    StudentName  string  `json:"student_name"`
    StudentImage string  `json:"student_image"`
    Rating       float64 `json:"rating"`
    Comment      string  `json:"comment"`
    Date         string  `json:"date"` // YYYY-MM-DD
    Response     string  `json:"tutor_response,omitempty"`
}

// Tutor is the public profile of a user with the tutor role. Rating is
// derived from Reviews.
type Tutor struct {
    ID             string       `json:"id"`
    Name           string       `json:"name"`
    ProfileImage   string       `json:"profile_image"`
    Subjects       []string     `json:"subjects"`
    HourlyRate     float64      `json:"hourly_rate"`
    Location       string       `json:"location"`
    Availability   Availability `json:"availability"`
    Qualifications []string     `json:"qualifications"`
    Experience     string       `json:"experience"`
    Rating         float64      `json:"rating"`
    Reviews        []Review     `json:"reviews"`
    Bio            string       `json:"bio"`
}

// Clone returns a deep copy of t.
func (t Tutor) Clone() Tutor {
    out := t
    out.Subjects = append(make([]string, 0, len(t.Subjects)), t.Subjects...)
    out.Availability.Days = append(make([]string, 0, len(t.Availability.Days)), t.Availability.Days...)
    out.Availability.TimeSlots = append(make([]string, 0, len(t.Availability.TimeSlots)), t.Availability.TimeSlots...)
    out.Qualifications = append(make([]string, 0, len(t.Qualifications)), t.Qualifications...)
    out.Reviews = append(make([]Review, 0, len(t.Reviews)), t.Reviews...)
    return out
}

// TutorPatch carries the editable profile fields. Nil fields are left
// untouched.
type TutorPatch struct {
    Name           *string       `json:"name,omitempty"`
    ProfileImage   *string       `json:"profile_image,omitempty"`
    Subjects       []string      `json:"subjects,omitempty"`
    HourlyRate     *float64      `json:"hourly_rate,omitempty"`
    Location       *string       `json:"location,omitempty"`
    Availability   *Availability `json:"availability,omitempty"`
    Qualifications []string      `json:"qualifications,omitempty"`
    Experience     *string       `json:"experience,omitempty"`
    Bio            *string       `json:"bio,omitempty"`
}
