package models

import (
	"errors"
	"time"
)

// ErrDuplicateResponse is returned by the store when a submission collides with
// the unique (roll number, course, year, semester) index.
var ErrDuplicateResponse = errors.New("duplicate response")

type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionTextarea       QuestionType = "textarea"
	QuestionScale          QuestionType = "scale"
	QuestionYesNo          QuestionType = "yesno"
	QuestionMultipleChoice QuestionType = "multiplechoice"
)

// ValidQuestionType reports whether t is one of the supported question types.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionText, QuestionTextarea, QuestionScale, QuestionYesNo, QuestionMultipleChoice:
		return true
	}
	return false
}

type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Required bool         `json:"required"`
	ScaleMin int          `json:"scale_min,omitempty"`
	ScaleMax int          `json:"scale_max,omitempty"`
	Options  []string     `json:"options,omitempty"`
}

type FeedbackForm struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Active        bool       `json:"active"`
	SchemaVersion int        `json:"schema_version"`
	Questions     []Question `json:"questions"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Faculty struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
}

type Subject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CourseID  string `json:"course_id,omitempty"`
	FacultyID string `json:"faculty_id,omitempty"`
	Active    bool   `json:"active"`
}

// AnswerValue is a tagged union over the supported answer shapes. Exactly one
// arm is meaningful and Type selects it; an unanswered slot has Answered=false
// and keeps its position so answers stay index-aligned with the question
// snapshot. Values are validated against the declared question type at
// submission time, but historical records may still carry a mismatched arm, so
// readers must check Type rather than assume it.
type AnswerValue struct {
	Type     QuestionType `json:"type"`
	Answered bool         `json:"answered"`
	Scale    int          `json:"scale,omitempty"`
	YesNo    bool         `json:"yesno,omitempty"`
	Text     string       `json:"text,omitempty"`
	Choice   string       `json:"choice,omitempty"`
	Choices  []string     `json:"choices,omitempty"`
}

// SubjectAnswerSet is one student's answers to one form for one subject. The
// question snapshot is a deep copy taken at submission so later form edits
// never change historical analytics.
type SubjectAnswerSet struct {
	SubjectID     string        `json:"subject_id"`
	SubjectName   string        `json:"subject_name"`
	FormID        string        `json:"form_id"`
	SchemaVersion int           `json:"schema_version"`
	Questions     []Question    `json:"questions"`
	Answers       []AnswerValue `json:"answers"`
}

type ResponseRecord struct {
	ID          string             `json:"id"`
	StudentName string             `json:"student_name"`
	RollNumber  string             `json:"roll_number"`
	Phone       string             `json:"phone,omitempty"`
	CourseID    string             `json:"course_id"`
	Year        int                `json:"year"`
	Semester    int                `json:"semester"`
	CreatedAt   time.Time          `json:"created_at"`
	SubmittedAt time.Time          `json:"submitted_at"`
	AnswerSets  []SubjectAnswerSet `json:"answer_sets"`
}

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CloneQuestions returns a deep copy of qs for snapshotting into answer sets.
func CloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		cq := q
		if len(q.Options) > 0 {
			cq.Options = append([]string(nil), q.Options...)
		}
		out[i] = cq
	}
	return out
}
