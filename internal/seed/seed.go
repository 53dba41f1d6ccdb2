// Package seed provides the demo data the marketplace starts with.
package seed

import (
    "time"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// Users returns the two demo accounts. Both share passwordHash. The tutor
// account operates catalog profile "2"; the student id is kept out of the
// catalog id range.
func Users(passwordHash string) []model.User {
    return []model.User{
        {ID: "u1", Name: "John Doe", Email: "student@example.com", Role: model.RoleStudent,
            Avatar: "https://i.pravatar.cc/150?img=1", PasswordHash: passwordHash},
        {ID: "2", Name: "Jane Smith", Email: "tutor@example.com", Role: model.RoleTutor,
            Avatar: "https://i.pravatar.cc/150?img=2", PasswordHash: passwordHash},
    }
}

// Tutors returns the initial catalog.
func Tutors() []model.Tutor {
    return []model.Tutor{
        {
            ID:           "1",
            Name:         "Dr. Emily Johnson",
            ProfileImage: "https://i.pravatar.cc/150?img=5",
            Subjects:     []string{"Mathematics", "Statistics", "Calculus"},
            HourlyRate:   40,
            Location:     "New York",
            Availability: model.Availability{
                Days:      []string{"Monday", "Tuesday", "Thursday"},
                TimeSlots: []string{"9:00 AM - 12:00 PM", "3:00 PM - 6:00 PM"},
            },
            Qualifications: []string{"Ph.D. in Mathematics", "Master in Education"},
            Experience:     "10+ years teaching at university level",
            Rating:         4.8,
            Reviews: []model.Review{
                {ID: "101", StudentID: "201", StudentName: "Michael Brown", StudentImage: "https://i.pravatar.cc/150?img=11",
                    Rating: 5, Comment: "Dr. Johnson explains complex concepts in a way that's easy to understand. Highly recommended!", Date: "2023-05-15"},
                {ID: "102", StudentID: "202", StudentName: "Sarah Wilson", StudentImage: "https://i.pravatar.cc/150?img=16",
                    Rating: 4.5, Comment: "Very thorough and patient. Helped me get through my calculus finals.", Date: "2023-04-20"},
            },
            Bio: "I am passionate about making mathematics accessible and engaging for all students. With a Ph.D. in Mathematics and over a decade of teaching experience, I specialize in breaking down complex concepts into understandable components.",
        },
        {
            ID:           "2",
            Name:         "Professor Alex Martinez",
            ProfileImage: "https://i.pravatar.cc/150?img=7",
            Subjects:     []string{"Physics", "Engineering", "Astronomy"},
            HourlyRate:   45,
            Location:     "Boston",
            Availability: model.Availability{
                Days:      []string{"Wednesday", "Friday", "Saturday"},
                TimeSlots: []string{"10:00 AM - 1:00 PM", "4:00 PM - 8:00 PM"},
            },
            Qualifications: []string{"Ph.D. in Physics", "Bachelor in Engineering"},
            Experience:     "8 years as university professor, 5 years private tutoring",
            Rating:         4.9,
            Reviews: []model.Review{
                {ID: "103", StudentID: "203", StudentName: "Emma Davis", StudentImage: "https://i.pravatar.cc/150?img=23",
                    Rating: 5, Comment: "Professor Martinez makes physics fun and interesting. I've improved significantly since working with him.", Date: "2023-05-10"},
            },
            Bio: "Former NASA researcher turned educator. I believe that understanding physics is key to understanding our universe. My teaching approach combines theoretical knowledge with practical applications.",
        },
        {
            ID:           "3",
            Name:         "Ms. Sophia Lee",
            ProfileImage: "https://i.pravatar.cc/150?img=34",
            Subjects:     []string{"English Literature", "Creative Writing", "Grammar"},
            HourlyRate:   35,
            Location:     "Chicago",
            Availability: model.Availability{
                Days:      []string{"Monday", "Wednesday", "Thursday", "Sunday"},
                TimeSlots: []string{"9:00 AM - 12:00 PM", "1:00 PM - 4:00 PM", "6:00 PM - 8:00 PM"},
            },
            Qualifications: []string{"Master in English Literature", "Published Author"},
            Experience:     "12 years teaching experience, published novelist",
            Rating:         4.7,
            Reviews: []model.Review{
                {ID: "104", StudentID: "204", StudentName: "Daniel Moore", StudentImage: "https://i.pravatar.cc/150?img=53",
                    Rating: 4.5, Comment: "Ms. Lee helped me improve my essay writing skills dramatically. Her feedback is always constructive and specific.", Date: "2023-04-05"},
                {ID: "105", StudentID: "205", StudentName: "Olivia Taylor", StudentImage: "https://i.pravatar.cc/150?img=47",
                    Rating: 5, Comment: "I've gained so much confidence in my writing since working with Sophia. She's encouraging and insightful.", Date: "2023-03-22"},
            },
            Bio: "As both a teacher and published author, I bring real-world writing experience to my tutoring sessions. I specialize in helping students find their unique voice and express themselves clearly and effectively through writing.",
        },
        {
            ID:           "4",
            Name:         "Mark Wilson",
            ProfileImage: "https://i.pravatar.cc/150?img=50",
            Subjects:     []string{"Chemistry", "Biology", "Biochemistry"},
            HourlyRate:   38,
            Location:     "Seattle",
            Availability: model.Availability{
                Days:      []string{"Tuesday", "Thursday", "Saturday"},
                TimeSlots: []string{"11:00 AM - 3:00 PM", "5:00 PM - 8:00 PM"},
            },
            Qualifications: []string{"Master in Chemistry", "Bachelor in Biology"},
            Experience:     "7 years teaching in high school, 4 years private tutoring",
            Rating:         4.6,
            Reviews: []model.Review{
                {ID: "106", StudentID: "206", StudentName: "James Anderson", StudentImage: "https://i.pravatar.cc/150?img=67",
                    Rating: 4.5, Comment: "Mark makes chemistry interesting with real-life examples. My grades have improved a lot.", Date: "2023-05-18"},
            },
            Bio: "My approach to teaching science focuses on practical applications and hands-on learning. I enjoy helping students connect scientific concepts to everyday life, making the subject more engaging and easier to understand.",
        },
        {
            ID:           "5",
            Name:         "Dr. Robert Chen",
            ProfileImage: "https://i.pravatar.cc/150?img=54",
            Subjects:     []string{"Computer Science", "Programming", "Data Science"},
            HourlyRate:   50,
            Location:     "San Francisco",
            Availability: model.Availability{
                Days:      []string{"Monday", "Wednesday", "Friday"},
                TimeSlots: []string{"1:00 PM - 5:00 PM", "7:00 PM - 9:00 PM"},
            },
            Qualifications: []string{"Ph.D. in Computer Science", "Industry experience at major tech companies"},
            Experience:     "5 years in Silicon Valley, 8 years teaching CS at university",
            Rating:         4.9,
            Reviews: []model.Review{
                {ID: "107", StudentID: "207", StudentName: "Sophia Garcia", StudentImage: "https://i.pravatar.cc/150?img=25",
                    Rating: 5, Comment: "Dr. Chen's industry experience makes his teaching practical and relevant. I've learned skills that directly apply to my job.", Date: "2023-04-25"},
                {ID: "108", StudentID: "208", StudentName: "Ethan Miller", StudentImage: "https://i.pravatar.cc/150?img=58",
                    Rating: 4.8, Comment: "Excellent at explaining complex programming concepts in simple terms. Always patient with questions.", Date: "2023-03-15"},
            },
            Bio: "With a background in both academia and industry, I bring a comprehensive perspective to teaching computer science. I focus on teaching not just theory, but also practical skills that are valuable in today's tech industry.",
        },
    }
}

func ts(s string) time.Time {
    t, err := time.Parse("2006-01-02T15:04:05", s)
    if err != nil {
        panic(err)
    }
    return t
}

// Messages returns the initial direct messages.
func Messages() []model.Message {
    return []model.Message{
        {ID: "1001", SenderID: "201", SenderName: "Michael Brown", ReceiverID: "1",
            Content:   "Hello, I'm interested in scheduling a tutoring session for calculus. Are you available next week?",
            Timestamp: ts("2023-05-18T14:23:00")},
        {ID: "1002", SenderID: "1", SenderName: "Dr. Emily Johnson", ReceiverID: "201",
            Content:   "Hi Michael! Yes, I have availability on Tuesday and Thursday afternoons. What specific topics do you need help with?",
            Timestamp: ts("2023-05-18T15:10:00"), Read: true},
        {ID: "1003", SenderID: "204", SenderName: "Daniel Moore", ReceiverID: "3",
            Content:   "I need help with my college application essay. When can we meet?",
            Timestamp: ts("2023-05-17T09:45:00")},
    }
}

// Conversations returns the threads for the seeded messages.
func Conversations() []model.Conversation {
    return []model.Conversation{
        {ID: "2001", Participants: [2]string{"1", "201"},
            LastMessage:          "Hi Michael! Yes, I have availability on Tuesday and Thursday afternoons. What specific topics do you need help with?",
            LastMessageTimestamp: ts("2023-05-18T15:10:00")},
        {ID: "2002", Participants: [2]string{"3", "204"},
            LastMessage:          "I need help with my college application essay. When can we meet?",
            LastMessageTimestamp: ts("2023-05-17T09:45:00")},
    }
}

// Appointments returns the initial bookings.
func Appointments() []model.Appointment {
    return []model.Appointment{
        {ID: "3001", TutorID: "1", TutorName: "Dr. Emily Johnson", TutorImage: "https://i.pravatar.cc/150?img=5",
            StudentID: "201", StudentName: "Michael Brown", StudentImage: "https://i.pravatar.cc/150?img=11",
            Subject: "Calculus", Date: "2023-05-25", StartTime: "10:00 AM", EndTime: "11:30 AM", Status: model.StatusConfirmed},
        {ID: "3002", TutorID: "3", TutorName: "Ms. Sophia Lee", TutorImage: "https://i.pravatar.cc/150?img=34",
            StudentID: "204", StudentName: "Daniel Moore", StudentImage: "https://i.pravatar.cc/150?img=53",
            Subject: "Essay Writing", Date: "2023-05-27", StartTime: "1:00 PM", EndTime: "2:30 PM", Status: model.StatusPending},
    }
}
