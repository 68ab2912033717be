package services

import (
	"sort"
	"time"

	"github.com/classpulse/classpulse/internal/models"
)

// RollupStore extends record access with the registry lookups needed to attach
// identity fields to grouped counts.
type RollupStore interface {
	FilterStore
	GetCourse(id string) (*models.Course, error)
	GetSubject(id string) (*models.Subject, error)
	GetFaculty(id string) (*models.Faculty, error)
}

type CourseCount struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Count    int    `json:"count"`
}

type SubjectCount struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type FacultyCount struct {
	FacultyID  string `json:"faculty_id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Count      int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// OverviewReport groups the filtered record set by course, subject, faculty
// and calendar day over a trailing 7-day window.
type OverviewReport struct {
	TotalResponses int            `json:"total_responses"`
	Courses        []CourseCount  `json:"courses"`
	Subjects       []SubjectCount `json:"subjects"`
	Faculty        []FacultyCount `json:"faculty"`
	Daily          []DayCount     `json:"daily"`
	WeekTotal      int            `json:"week_total"`
}

// FacultyPerformance is one faculty member's response volume broken down by
// taught subject.
type FacultyPerformance struct {
	FacultyID      string         `json:"faculty_id"`
	Name           string         `json:"name"`
	TotalResponses int            `json:"total_responses"`
	Subjects       []SubjectCount `json:"subjects"`
}

type RollupService struct {
	store  RollupStore
	filter *ResponseFilter
	now    func() time.Time
}

func NewRollupService(store RollupStore) *RollupService {
	return &RollupService{
		store:  store,
		filter: NewResponseFilter(store),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *RollupService) Overview(criteria FilterCriteria) (*OverviewReport, error) {
	records, err := s.filter.Apply(criteria)
	if err != nil {
		return nil, err
	}

	courseCounts := map[string]int{}
	subjectCounts := map[string]int{}
	subjectNames := map[string]string{}
	facultyCounts := map[string]int{}
	dayCounts := map[string]int{}
	weekTotal := 0
	weekStart := s.now().AddDate(0, 0, -7)

	subjectFaculty := map[string]string{}
	for _, rec := range records {
		courseCounts[rec.CourseID]++
		if rec.SubmittedAt.After(weekStart) {
			dayCounts[rec.SubmittedAt.UTC().Format("2006-01-02")]++
			weekTotal++
		}
		for i := range rec.AnswerSets {
			set := &rec.AnswerSets[i]
			subjectCounts[set.SubjectID]++
			if set.SubjectName != "" {
				subjectNames[set.SubjectID] = set.SubjectName
			}
			fid, ok := subjectFaculty[set.SubjectID]
			if !ok {
				fid = ""
				if sub, err := s.store.GetSubject(set.SubjectID); err != nil {
					return nil, err
				} else if sub != nil {
					fid = sub.FacultyID
				}
				subjectFaculty[set.SubjectID] = fid
			}
			if fid != "" {
				facultyCounts[fid]++
			}
		}
	}

	out := &OverviewReport{
		TotalResponses: len(records),
		Courses:        []CourseCount{},
		Subjects:       []SubjectCount{},
		Faculty:        []FacultyCount{},
		Daily:          []DayCount{},
		WeekTotal:      weekTotal,
	}
	for id, n := range courseCounts {
		cc := CourseCount{CourseID: id, Name: id, Count: n}
		if course, err := s.store.GetCourse(id); err != nil {
			return nil, err
		} else if course != nil {
			cc.Name, cc.Code = course.Name, course.Code
		}
		out.Courses = append(out.Courses, cc)
	}
	for id, n := range subjectCounts {
		name := subjectNames[id]
		if name == "" {
			name = id
		}
		out.Subjects = append(out.Subjects, SubjectCount{SubjectID: id, Name: name, Count: n})
	}
	for id, n := range facultyCounts {
		fc := FacultyCount{FacultyID: id, Name: id, Count: n}
		if fac, err := s.store.GetFaculty(id); err != nil {
			return nil, err
		} else if fac != nil {
			fc.Name, fc.Department = fac.Name, fac.Department
		}
		out.Faculty = append(out.Faculty, fc)
	}
	sort.Slice(out.Courses, func(i, j int) bool {
		if out.Courses[i].Count != out.Courses[j].Count {
			return out.Courses[i].Count > out.Courses[j].Count
		}
		return out.Courses[i].Name < out.Courses[j].Name
	})
	sort.Slice(out.Subjects, func(i, j int) bool {
		if out.Subjects[i].Count != out.Subjects[j].Count {
			return out.Subjects[i].Count > out.Subjects[j].Count
		}
		return out.Subjects[i].Name < out.Subjects[j].Name
	})
	sort.Slice(out.Faculty, func(i, j int) bool {
		if out.Faculty[i].Count != out.Faculty[j].Count {
			return out.Faculty[i].Count > out.Faculty[j].Count
		}
		return out.Faculty[i].Name < out.Faculty[j].Name
	})

	days := make([]string, 0, len(dayCounts))
	for d := range dayCounts {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		out.Daily = append(out.Daily, DayCount{Date: d, Count: dayCounts[d]})
	}
	return out, nil
}

// Performance restricts the filtered set to subjects taught by facultyID and
// reports the per-subject response breakdown sorted descending by count.
func (s *RollupService) Performance(facultyID string, criteria FilterCriteria) (*FacultyPerformance, error) {
	if facultyID == "" {
		return nil, NewInvalidError("faculty id is required")
	}
	fac, err := s.store.GetFaculty(facultyID)
	if err != nil {
		return nil, err
	}
	if fac == nil {
		return nil, NewNotFoundError("faculty not found")
	}
	subjects, err := s.store.ListSubjectsByFaculty(facultyID)
	if err != nil {
		return nil, err
	}
	taught := map[string]string{}
	for _, sub := range subjects {
		if sub.Active {
			taught[sub.ID] = sub.Name
		}
	}

	criteria.FacultyID = facultyID
	records, err := s.filter.Apply(criteria)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	total := 0
	for _, rec := range records {
		for i := range rec.AnswerSets {
			set := &rec.AnswerSets[i]
			if _, ok := taught[set.SubjectID]; ok {
				counts[set.SubjectID]++
				total++
			}
		}
	}

	out := &FacultyPerformance{
		FacultyID:      facultyID,
		Name:           fac.Name,
		TotalResponses: total,
		Subjects:       []SubjectCount{},
	}
	for id, n := range counts {
		out.Subjects = append(out.Subjects, SubjectCount{SubjectID: id, Name: taught[id], Count: n})
	}
	sort.Slice(out.Subjects, func(i, j int) bool {
		if out.Subjects[i].Count != out.Subjects[j].Count {
			return out.Subjects[i].Count > out.Subjects[j].Count
		}
		return out.Subjects[i].Name < out.Subjects[j].Name
	})
	return out, nil
}
