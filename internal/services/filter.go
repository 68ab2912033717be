package services

import (
	"sort"
	"strings"

	"github.com/classpulse/classpulse/internal/models"
)

// FilterStore abstracts the record access the response filter needs.
type FilterStore interface {
	ListResponses() ([]*models.ResponseRecord, error)
	ListSubjectsByFaculty(facultyID string) ([]*models.Subject, error)
}

// FilterCriteria narrows the record set. Zero values are wildcards and all
// provided criteria must match (AND semantics).
type FilterCriteria struct {
	CourseID    string
	Year        int
	Semester    int
	SubjectID   string
	FacultyID   string
	FormID      string
	StudentName string
	RollNumber  string
}

// Page is one page of filtered records plus pagination metadata.
type Page struct {
	Records []*models.ResponseRecord `json:"records"`
	Total   int                      `json:"total"`
	Page    int                      `json:"page"`
	Limit   int                      `json:"limit"`
	HasNext bool                     `json:"has_next"`
	HasPrev bool                     `json:"has_prev"`
}

type ResponseFilter struct {
	store FilterStore
}

func NewResponseFilter(store FilterStore) *ResponseFilter {
	return &ResponseFilter{store: store}
}

// Apply returns every record matching the criteria, ordered by submission time
// descending. Faculty filtering is indirect: the faculty's active subjects are
// resolved first and a record matches when any of its answer sets references
// one of them.
func (f *ResponseFilter) Apply(criteria FilterCriteria) ([]*models.ResponseRecord, error) {
	records, err := f.store.ListResponses()
	if err != nil {
		return nil, err
	}

	var facultySubjects map[string]bool
	if criteria.FacultyID != "" {
		subjects, err := f.store.ListSubjectsByFaculty(criteria.FacultyID)
		if err != nil {
			return nil, err
		}
		facultySubjects = map[string]bool{}
		for _, sub := range subjects {
			if sub.Active {
				facultySubjects[sub.ID] = true
			}
		}
	}

	out := make([]*models.ResponseRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, criteria, facultySubjects) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// Paginate selects the 1-indexed page p of size limit from records.
func Paginate(records []*models.ResponseRecord, p, limit int) Page {
	if p < 1 {
		p = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(records)
	start := (p - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return Page{
		Records: records[start:end],
		Total:   total,
		Page:    p,
		Limit:   limit,
		HasNext: end < total,
		HasPrev: p > 1 && start > 0,
	}
}

func matches(rec *models.ResponseRecord, c FilterCriteria, facultySubjects map[string]bool) bool {
	if c.CourseID != "" && rec.CourseID != c.CourseID {
		return false
	}
	if c.Year != 0 && rec.Year != c.Year {
		return false
	}
	if c.Semester != 0 && rec.Semester != c.Semester {
		return false
	}
	if c.StudentName != "" && !containsFold(rec.StudentName, c.StudentName) {
		return false
	}
	if c.RollNumber != "" && !containsFold(rec.RollNumber, c.RollNumber) {
		return false
	}
	if c.SubjectID != "" && !referencesSubject(rec, func(id string) bool { return id == c.SubjectID }) {
		return false
	}
	if facultySubjects != nil && !referencesSubject(rec, func(id string) bool { return facultySubjects[id] }) {
		return false
	}
	if c.FormID != "" {
		found := false
		for i := range rec.AnswerSets {
			if rec.AnswerSets[i].FormID == c.FormID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func referencesSubject(rec *models.ResponseRecord, match func(string) bool) bool {
	for i := range rec.AnswerSets {
		if match(rec.AnswerSets[i].SubjectID) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
