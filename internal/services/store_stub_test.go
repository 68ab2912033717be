package services

import (
	"encoding/json"

	"github.com/classpulse/classpulse/internal/models"
)

// fakeStore is an in-memory stand-in for the sqlite store. InsertResponse
// emulates the unique (roll, course, year, semester) index.
type fakeStore struct {
	responses []*models.ResponseRecord
	subjects  map[string]*models.Subject
	courses   map[string]*models.Course
	faculty   map[string]*models.Faculty
	forms     map[string]*models.FeedbackForm
	admins    map[string]*models.Admin
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subjects: map[string]*models.Subject{},
		courses:  map[string]*models.Course{},
		faculty:  map[string]*models.Faculty{},
		forms:    map[string]*models.FeedbackForm{},
		admins:   map[string]*models.Admin{},
	}
}

func (s *fakeStore) ListResponses() ([]*models.ResponseRecord, error) {
	out := make([]*models.ResponseRecord, len(s.responses))
	copy(out, s.responses)
	return out, nil
}

func (s *fakeStore) ListSubjectsByFaculty(facultyID string) ([]*models.Subject, error) {
	out := []*models.Subject{}
	for _, sub := range s.subjects {
		if sub.FacultyID == facultyID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeStore) ListSubjects() ([]*models.Subject, error) {
	out := []*models.Subject{}
	for _, sub := range s.subjects {
		out = append(out, sub)
	}
	return out, nil
}

func (s *fakeStore) GetSubject(id string) (*models.Subject, error) { return s.subjects[id], nil }
func (s *fakeStore) GetCourse(id string) (*models.Course, error)   { return s.courses[id], nil }
func (s *fakeStore) GetFaculty(id string) (*models.Faculty, error) { return s.faculty[id], nil }
func (s *fakeStore) GetForm(id string) (*models.FeedbackForm, error) {
	return s.forms[id], nil
}

func (s *fakeStore) InsertCourse(c *models.Course) error { s.courses[c.ID] = c; return nil }
func (s *fakeStore) InsertSubject(sub *models.Subject) error {
	s.subjects[sub.ID] = sub
	return nil
}
func (s *fakeStore) UpdateSubject(sub *models.Subject) error {
	s.subjects[sub.ID] = sub
	return nil
}
func (s *fakeStore) InsertFaculty(f *models.Faculty) error { s.faculty[f.ID] = f; return nil }
func (s *fakeStore) InsertForm(form *models.FeedbackForm) error {
	s.forms[form.ID] = form
	return nil
}
func (s *fakeStore) UpdateForm(form *models.FeedbackForm) error {
	s.forms[form.ID] = form
	return nil
}

func (s *fakeStore) ListCourses() ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) ListFaculty() ([]*models.Faculty, error) {
	out := []*models.Faculty{}
	for _, f := range s.faculty {
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeStore) ListForms() ([]*models.FeedbackForm, error) {
	out := []*models.FeedbackForm{}
	for _, f := range s.forms {
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeStore) DeleteCourse(id string) (bool, error) {
	_, ok := s.courses[id]
	delete(s.courses, id)
	return ok, nil
}

func (s *fakeStore) DeleteSubject(id string) (bool, error) {
	_, ok := s.subjects[id]
	delete(s.subjects, id)
	return ok, nil
}

func (s *fakeStore) DeleteFaculty(id string) (bool, error) {
	_, ok := s.faculty[id]
	delete(s.faculty, id)
	return ok, nil
}

func (s *fakeStore) DeleteForm(id string) (bool, error) {
	_, ok := s.forms[id]
	delete(s.forms, id)
	return ok, nil
}

func (s *fakeStore) InsertResponse(rec *models.ResponseRecord) error {
	for _, existing := range s.responses {
		if existing.RollNumber == rec.RollNumber && existing.CourseID == rec.CourseID &&
			existing.Year == rec.Year && existing.Semester == rec.Semester {
			return models.ErrDuplicateResponse
		}
	}
	s.responses = append(s.responses, rec)
	return nil
}

func (s *fakeStore) GetResponse(id string) (*models.ResponseRecord, error) {
	for _, rec := range s.responses {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) DeleteResponse(id string) (bool, error) {
	for i, rec := range s.responses {
		if rec.ID == id {
			s.responses = append(s.responses[:i], s.responses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) GetAdminByEmail(email string) (*models.Admin, error) {
	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) InsertAdmin(a *models.Admin) error { s.admins[a.ID] = a; return nil }

func (s *fakeStore) CountAdmins() (int, error) { return len(s.admins), nil }

// --- answer construction helpers ---

func scaleAns(v int) models.AnswerValue {
	return models.AnswerValue{Type: models.QuestionScale, Answered: true, Scale: v}
}

func yesNoAns(v bool) models.AnswerValue {
	return models.AnswerValue{Type: models.QuestionYesNo, Answered: true, YesNo: v}
}

func textAns(s string) models.AnswerValue {
	return models.AnswerValue{Type: models.QuestionText, Answered: true, Text: s}
}

func choiceAns(opt string) models.AnswerValue {
	return models.AnswerValue{Type: models.QuestionMultipleChoice, Answered: true, Choice: opt}
}

func multiAns(opts ...string) models.AnswerValue {
	return models.AnswerValue{Type: models.QuestionMultipleChoice, Answered: true, Choices: opts}
}

func unanswered(t models.QuestionType) models.AnswerValue {
	return models.AnswerValue{Type: t}
}

func rawJSON(s string) json.RawMessage { return json.RawMessage(s) }
