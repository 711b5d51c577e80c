package domain

import "time"

// SubjectType distinguishes course material from exam papers.
type SubjectType string

const (
	SubjectCourse SubjectType = "cours"
	SubjectExam   SubjectType = "examen"
)

// Subject is a piece of learning material served by the platform.
type Subject struct {
	ID        string      `json:"id"`
	Type      SubjectType `json:"type"`
	Title     string      `json:"title"`
	FilePath  string      `json:"filePath"`
	MimeType  string      `json:"mimeType"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Question is one multiple-choice question attached to a subject.
type Question struct {
	ID             string    `json:"id"`
	SubjectID      string    `json:"subjectId"`
	Text           string    `json:"text"`
	Options        []string  `json:"options"`
	CorrectAnswers []int     `json:"correctAnswers"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FilterSubjects returns the subjects of the given type, preserving order.
func FilterSubjects(subjects []Subject, t SubjectType) []Subject {
	out := make([]Subject, 0, len(subjects))
	for _, s := range subjects {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}
