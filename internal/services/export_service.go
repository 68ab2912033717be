package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/classpulse/classpulse/internal/models"
)

type ExportStore interface {
	FilterStore
	GetForm(id string) (*models.FeedbackForm, error)
	GetCourse(id string) (*models.Course, error)
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	store  ExportStore
	filter *ResponseFilter
	now    func() time.Time
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{
		store:  store,
		filter: NewResponseFilter(store),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ExportCSV flattens the filtered record set for one form into a CSV table,
// one row per (record, matching answer set) pair.
func (s *ExportService) ExportCSV(formID string, criteria FilterCriteria) (*ExportResult, error) {
	if formID == "" {
		return nil, NewInvalidError("form id is required")
	}
	criteria.FormID = formID
	records, err := s.filter.Apply(criteria)
	if err != nil {
		return nil, err
	}

	courseNames := map[string]string{}
	var schema []models.Question
	rows := []ExportRow{}
	for _, rec := range records {
		course, ok := courseNames[rec.CourseID]
		if !ok {
			course = rec.CourseID
			if c, err := s.store.GetCourse(rec.CourseID); err != nil {
				return nil, err
			} else if c != nil {
				course = c.Name
			}
			courseNames[rec.CourseID] = course
		}
		for i := range rec.AnswerSets {
			set := &rec.AnswerSets[i]
			if set.FormID != formID {
				continue
			}
			if schema == nil {
				schema = set.Questions
			}
			cells := make([]string, 0, len(set.Answers))
			for _, a := range set.Answers {
				cells = append(cells, FormatAnswerCell(a))
			}
			rows = append(rows, ExportRow{
				StudentName: rec.StudentName,
				RollNumber:  rec.RollNumber,
				Phone:       rec.Phone,
				Course:      course,
				Year:        rec.Year,
				Semester:    rec.Semester,
				Subject:     set.SubjectName,
				SubmittedAt: rec.SubmittedAt.UTC().Format(time.RFC3339),
				Answers:     cells,
			})
		}
	}
	if len(rows) == 0 {
		return nil, NewNotFoundError("no responses found for this form")
	}

	data, err := ExportResponsesCSV(schema, rows)
	if err != nil {
		return nil, err
	}

	tag := formID
	if form, err := s.store.GetForm(formID); err != nil {
		return nil, err
	} else if form != nil && form.Title != "" {
		tag = slugify(form.Title)
	}
	filename := fmt.Sprintf("feedback_responses_%s_%s.csv", tag, s.now().Format("2006-01-02"))
	return &ExportResult{
		Filename:    filename,
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
	}, nil
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "form"
	}
	return b.String()
}
