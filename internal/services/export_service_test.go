package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/classpulse/classpulse/internal/models"
)

func TestExportCSVShape(t *testing.T) {
	store := newFakeStore()
	store.courses["C1"] = &models.Course{ID: "C1", Name: "Computer Science", Code: "CS"}
	store.forms["F1"] = &models.FeedbackForm{ID: "F1", Title: "Course Feedback"}

	questions := []models.Question{
		{ID: "Q1", Text: "Rate the course", Type: models.QuestionScale, ScaleMin: 1, ScaleMax: 5},
		{ID: "Q2", Text: "Which topics helped?", Type: models.QuestionMultipleChoice, Options: []string{"Graphs", "DP"}},
	}
	store.responses = []*models.ResponseRecord{
		{
			ID: "R1", StudentName: "Alice, Mwangi", RollNumber: "21CS001", Phone: "0700000001",
			CourseID: "C1", Year: 2024, Semester: 1,
			SubmittedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			AnswerSets: []models.SubjectAnswerSet{
				{
					SubjectID: "S1", SubjectName: "Algorithms", FormID: "F1",
					Questions: questions,
					Answers:   []models.AnswerValue{scaleAns(4), multiAns("Graphs", "DP")},
				},
			},
		},
	}

	svc := NewExportService(store)
	svc.now = func() time.Time { return time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC) }

	res, err := svc.ExportCSV("F1", FilterCriteria{})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if res.Filename != "feedback_responses_course_feedback_2025-03-11.csv" {
		t.Fatalf("filename = %q", res.Filename)
	}

	records, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(records))
	}
	header := records[0]
	if len(header) != 10 {
		t.Fatalf("columns = %d, want 8 fixed + 2 questions", len(header))
	}
	if header[8] != "Q1: Rate the course" || header[9] != "Q2: Which topics helped?" {
		t.Fatalf("question headers = %v", header[8:])
	}

	row := records[1]
	if row[0] != "Alice, Mwangi" {
		t.Fatalf("comma in name not preserved: %q", row[0])
	}
	if row[3] != "Computer Science" || row[6] != "Algorithms" {
		t.Fatalf("course/subject = %q/%q", row[3], row[6])
	}
	if row[8] != "4" {
		t.Fatalf("scale cell = %q", row[8])
	}
	if row[9] != "Graphs; DP" {
		t.Fatalf("multi-select cell = %q, want joined with '; '", row[9])
	}
}

func TestExportCSVNotFound(t *testing.T) {
	svc := NewExportService(newFakeStore())
	_, err := svc.ExportCSV("F1", FilterCriteria{})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestFormatAnswerCell(t *testing.T) {
	cases := []struct {
		name string
		in   models.AnswerValue
		want string
	}{
		{"unanswered", unanswered(models.QuestionText), ""},
		{"scale", scaleAns(3), "3"},
		{"yes", yesNoAns(true), "yes"},
		{"no", yesNoAns(false), "no"},
		{"single choice", choiceAns("A"), "A"},
		{"multi choice", multiAns("A", "B"), "A; B"},
		{"text", textAns("fine"), "fine"},
	}
	for _, tc := range cases {
		if got := FormatAnswerCell(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
