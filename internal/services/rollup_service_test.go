package services

import (
	"testing"
	"time"

	"github.com/classpulse/classpulse/internal/models"
)

func seedRollupStore() *fakeStore {
	store := newFakeStore()
	store.courses["C1"] = &models.Course{ID: "C1", Name: "Computer Science", Code: "CS"}
	store.courses["C2"] = &models.Course{ID: "C2", Name: "Electrical Eng", Code: "EE"}
	store.faculty["FA1"] = &models.Faculty{ID: "FA1", Name: "Dr. Kamau", Department: "CS"}
	store.faculty["FA2"] = &models.Faculty{ID: "FA2", Name: "Prof. Achieng", Department: "EE"}
	store.subjects["S1"] = &models.Subject{ID: "S1", Name: "Algorithms", FacultyID: "FA1", Active: true}
	store.subjects["S2"] = &models.Subject{ID: "S2", Name: "Circuits", FacultyID: "FA2", Active: true}

	now := time.Now().UTC()
	set := func(subject string) models.SubjectAnswerSet {
		return models.SubjectAnswerSet{SubjectID: subject, SubjectName: subject, FormID: "F1"}
	}
	store.responses = []*models.ResponseRecord{
		{ID: "R1", RollNumber: "A1", CourseID: "C1", SubmittedAt: now.AddDate(0, 0, -1),
			AnswerSets: []models.SubjectAnswerSet{set("S1")}},
		{ID: "R2", RollNumber: "A2", CourseID: "C1", SubmittedAt: now.AddDate(0, 0, -2),
			AnswerSets: []models.SubjectAnswerSet{set("S1"), set("S2")}},
		{ID: "R3", RollNumber: "A3", CourseID: "C2", SubmittedAt: now.AddDate(0, 0, -20),
			AnswerSets: []models.SubjectAnswerSet{set("S2")}},
	}
	return store
}

func TestOverviewGroupsAndSorts(t *testing.T) {
	svc := NewRollupService(seedRollupStore())

	got, err := svc.Overview(FilterCriteria{})
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.TotalResponses != 3 {
		t.Fatalf("TotalResponses = %d, want 3", got.TotalResponses)
	}

	if len(got.Courses) != 2 || got.Courses[0].CourseID != "C1" || got.Courses[0].Count != 2 {
		t.Fatalf("courses = %+v", got.Courses)
	}
	if got.Courses[0].Name != "Computer Science" {
		t.Fatalf("course identity missing: %+v", got.Courses[0])
	}

	if len(got.Subjects) != 2 || got.Subjects[0].SubjectID != "S1" || got.Subjects[0].Count != 2 {
		t.Fatalf("subjects = %+v", got.Subjects)
	}

	if len(got.Faculty) != 2 || got.Faculty[0].FacultyID != "FA1" || got.Faculty[0].Count != 2 {
		t.Fatalf("faculty = %+v", got.Faculty)
	}
	if got.Faculty[0].Name != "Dr. Kamau" {
		t.Fatalf("faculty identity missing: %+v", got.Faculty[0])
	}
}

func TestOverviewWeekWindow(t *testing.T) {
	svc := NewRollupService(seedRollupStore())

	got, err := svc.Overview(FilterCriteria{})
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	// R3 is 20 days old: outside the trailing 7-day window
	if got.WeekTotal != 2 {
		t.Fatalf("WeekTotal = %d, want 2", got.WeekTotal)
	}
	if got.TotalResponses != 3 {
		t.Fatalf("all-time total = %d, want 3", got.TotalResponses)
	}
	if len(got.Daily) != 2 {
		t.Fatalf("daily buckets = %+v", got.Daily)
	}
	if !(got.Daily[0].Date < got.Daily[1].Date) {
		t.Fatalf("daily series not ascending: %+v", got.Daily)
	}
}

func TestFacultyPerformance(t *testing.T) {
	svc := NewRollupService(seedRollupStore())

	got, err := svc.Performance("FA2", FilterCriteria{})
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if got.Name != "Prof. Achieng" {
		t.Fatalf("Name = %q", got.Name)
	}
	// S2 appears in R2 and R3
	if got.TotalResponses != 2 {
		t.Fatalf("TotalResponses = %d, want 2", got.TotalResponses)
	}
	if len(got.Subjects) != 1 || got.Subjects[0].SubjectID != "S2" || got.Subjects[0].Count != 2 {
		t.Fatalf("subjects = %+v", got.Subjects)
	}
}

func TestFacultyPerformanceUnknownFaculty(t *testing.T) {
	svc := NewRollupService(seedRollupStore())
	_, err := svc.Performance("nope", FilterCriteria{})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestFacultyPerformanceScopedByCourse(t *testing.T) {
	svc := NewRollupService(seedRollupStore())

	got, err := svc.Performance("FA2", FilterCriteria{CourseID: "C1"})
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	// only R2 is in C1 and references S2
	if got.TotalResponses != 1 {
		t.Fatalf("TotalResponses = %d, want 1", got.TotalResponses)
	}
}
