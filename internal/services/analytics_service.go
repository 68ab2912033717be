package services

import (
	"github.com/classpulse/classpulse/internal/models"
)

// FormAnalytics is the aggregated per-question report for one form over a
// filtered record set.
type FormAnalytics struct {
	FormID               string            `json:"form_id"`
	SchemaVersion        int               `json:"schema_version"`
	TotalResponses       int               `json:"total_responses"`
	DistinctStudents     int               `json:"distinct_students"`
	DistinctSubjects     int               `json:"distinct_subjects"`
	DistinctCourses      int               `json:"distinct_courses"`
	AvgCompletionSeconds float64           `json:"avg_completion_seconds"`
	Questions            []QuestionSummary `json:"questions"`
}

type AnalyticsService struct {
	filter *ResponseFilter
}

func NewAnalyticsService(store FilterStore) *AnalyticsService {
	return &AnalyticsService{filter: NewResponseFilter(store)}
}

// FormAnalytics filters records to those answering formID, extracts the
// question schema from the first matching snapshot (snapshots of a form are
// structurally identical) and runs every question through the analyzer with
// the positionally aligned answers from all matching answer sets.
func (s *AnalyticsService) FormAnalytics(formID string, criteria FilterCriteria) (*FormAnalytics, error) {
	if formID == "" {
		return nil, NewInvalidError("form id is required")
	}
	criteria.FormID = formID
	records, err := s.filter.Apply(criteria)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, NewNotFoundError("no responses found for this form")
	}

	sets := make([]*models.SubjectAnswerSet, 0, len(records))
	for _, rec := range records {
		for i := range rec.AnswerSets {
			if rec.AnswerSets[i].FormID == formID {
				sets = append(sets, &rec.AnswerSets[i])
			}
		}
	}
	if len(sets) == 0 || len(sets[0].Questions) == 0 {
		return nil, NewNotFoundError("question schema not found for this form")
	}
	schema := sets[0].Questions

	out := &FormAnalytics{
		FormID:        formID,
		SchemaVersion: sets[0].SchemaVersion,
		Questions:     make([]QuestionSummary, 0, len(schema)),
	}
	for idx, q := range schema {
		answers := make([]models.AnswerValue, 0, len(sets))
		for _, set := range sets {
			if idx < len(set.Answers) {
				answers = append(answers, set.Answers[idx])
			}
		}
		out.Questions = append(out.Questions, AnalyzeQuestion(q, answers, len(sets)))
	}

	students := map[string]bool{}
	subjects := map[string]bool{}
	courses := map[string]bool{}
	var elapsed float64
	for _, rec := range records {
		students[rec.RollNumber] = true
		courses[rec.CourseID] = true
		elapsed += rec.SubmittedAt.Sub(rec.CreatedAt).Seconds()
	}
	for _, set := range sets {
		subjects[set.SubjectID] = true
	}
	out.TotalResponses = len(records)
	out.DistinctStudents = len(students)
	out.DistinctSubjects = len(subjects)
	out.DistinctCourses = len(courses)
	out.AvgCompletionSeconds = round2(elapsed / float64(len(records)))
	return out, nil
}
