package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/classpulse/classpulse/internal/models"
)

// multiValueSeparator joins multi-select answers into a single CSV cell.
const multiValueSeparator = "; "

// ExportRow is one flattened (record, answer set) pair ready for CSV output.
type ExportRow struct {
	StudentName string
	RollNumber  string
	Phone       string
	Course      string
	Year        int
	Semester    int
	Subject     string
	SubmittedAt string
	Answers     []string
}

// ExportResponsesCSV renders rows into a flat table with the fixed identity
// columns followed by one column per question in the snapshot schema.
func ExportResponsesCSV(questions []models.Question, rows []ExportRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Student Name", "Roll Number", "Phone", "Course", "Year", "Semester", "Subject", "Submitted At"}
	for i, q := range questions {
		header = append(header, fmt.Sprintf("Q%d: %s", i+1, q.Text))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range rows {
		rec := []string{
			r.StudentName,
			r.RollNumber,
			r.Phone,
			r.Course,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Semester),
			r.Subject,
			r.SubmittedAt,
		}
		cells := r.Answers
		if len(cells) > len(questions) {
			cells = cells[:len(questions)]
		}
		rec = append(rec, cells...)
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FormatAnswerCell renders one answer value as a CSV cell. Multi-select
// answers are joined with "; "; unanswered slots render empty.
func FormatAnswerCell(a models.AnswerValue) string {
	if !a.Answered {
		return ""
	}
	switch a.Type {
	case models.QuestionScale:
		return strconv.Itoa(a.Scale)
	case models.QuestionYesNo:
		if a.YesNo {
			return "yes"
		}
		return "no"
	case models.QuestionMultipleChoice:
		if len(a.Choices) > 0 {
			return strings.Join(a.Choices, multiValueSeparator)
		}
		return a.Choice
	default:
		return a.Text
	}
}
