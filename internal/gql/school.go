package gql

// Teacher is a member of the in-memory school graph.
type Teacher struct {
	ID      string
	Name    string
	Subject string
}

// Lesson is taught by exactly one teacher.
type Lesson struct {
	ID        string
	Title     string
	TeacherID string
}

// School is a read-only teacher/lesson graph resolved with nested loops.
type School struct {
	Teachers []Teacher
	Lessons  []Lesson
}

// DefaultSchool returns the seeded school graph.
func DefaultSchool() *School {
	return &School{
		Teachers: []Teacher{
			{ID: "1", Name: "Ada Lovelace", Subject: "Mathematics"},
			{ID: "2", Name: "Marie Curie", Subject: "Chemistry"},
			{ID: "3", Name: "Alan Turing", Subject: "Computer Science"},
		},
		Lessons: []Lesson{
			{ID: "1", Title: "Algebra", TeacherID: "1"},
			{ID: "2", Title: "Calculus", TeacherID: "1"},
			{ID: "3", Title: "Radioactivity", TeacherID: "2"},
			{ID: "4", Title: "Computability", TeacherID: "3"},
			{ID: "5", Title: "Cryptanalysis", TeacherID: "3"},
		},
	}
}

// LessonsOf returns the lessons taught by teacherID.
func (s *School) LessonsOf(teacherID string) []Lesson {
	out := make([]Lesson, 0)
	for _, l := range s.Lessons {
		if l.TeacherID == teacherID {
			out = append(out, l)
		}
	}
	return out
}

// TeacherOf returns the teacher of a lesson.
func (s *School) TeacherOf(l Lesson) (Teacher, bool) {
	for _, t := range s.Teachers {
		if t.ID == l.TeacherID {
			return t, true
		}
	}
	return Teacher{}, false
}
