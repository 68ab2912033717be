package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/classpulse/classpulse/internal/models"
)

// RegistryStore persists the course/subject/faculty/form registry that the
// analytics filters resolve against.
type RegistryStore interface {
	InsertCourse(c *models.Course) error
	GetCourse(id string) (*models.Course, error)
	ListCourses() ([]*models.Course, error)
	DeleteCourse(id string) (bool, error)

	InsertSubject(sub *models.Subject) error
	GetSubject(id string) (*models.Subject, error)
	ListSubjects() ([]*models.Subject, error)
	UpdateSubject(sub *models.Subject) error
	DeleteSubject(id string) (bool, error)

	InsertFaculty(f *models.Faculty) error
	GetFaculty(id string) (*models.Faculty, error)
	ListFaculty() ([]*models.Faculty, error)
	DeleteFaculty(id string) (bool, error)

	InsertForm(form *models.FeedbackForm) error
	GetForm(id string) (*models.FeedbackForm, error)
	ListForms() ([]*models.FeedbackForm, error)
	UpdateForm(form *models.FeedbackForm) error
	DeleteForm(id string) (bool, error)
}

type CourseInput struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

type SubjectInput struct {
	Name      string `json:"name" validate:"required"`
	CourseID  string `json:"course_id" validate:"omitempty"`
	FacultyID string `json:"faculty_id" validate:"omitempty"`
}

type FacultyInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"department"`
}

type FormInput struct {
	Title     string            `json:"title" validate:"required"`
	Active    bool              `json:"active"`
	Questions []models.Question `json:"questions" validate:"required,min=1"`
}

type RegistryService struct {
	store    RegistryStore
	validate *validator.Validate
	newID    func() string
}

func NewRegistryService(store RegistryStore) *RegistryService {
	return &RegistryService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    uuid.NewString,
	}
}

func (s *RegistryService) CreateCourse(in CourseInput) (*models.Course, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	c := &models.Course{ID: s.newID(), Name: strings.TrimSpace(in.Name), Code: strings.TrimSpace(in.Code)}
	if err := s.store.InsertCourse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RegistryService) ListCourses() ([]*models.Course, error) { return s.store.ListCourses() }

func (s *RegistryService) GetCourse(id string) (*models.Course, error) {
	c, err := s.store.GetCourse(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NewNotFoundError("course not found")
	}
	return c, nil
}

func (s *RegistryService) DeleteCourse(id string) error {
	ok, err := s.store.DeleteCourse(id)
	return deleted(ok, err, "course not found")
}

func (s *RegistryService) CreateSubject(in SubjectInput) (*models.Subject, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if in.FacultyID != "" {
		if err := s.requireFaculty(in.FacultyID); err != nil {
			return nil, err
		}
	}
	sub := &models.Subject{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		CourseID:  in.CourseID,
		FacultyID: in.FacultyID,
		Active:    true,
	}
	if err := s.store.InsertSubject(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *RegistryService) ListSubjects() ([]*models.Subject, error) { return s.store.ListSubjects() }

func (s *RegistryService) GetSubject(id string) (*models.Subject, error) {
	sub, err := s.store.GetSubject(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, NewNotFoundError("subject not found")
	}
	return sub, nil
}

// AssignFaculty points a subject at the faculty member teaching it; faculty
// performance reports and indirect filtering follow this assignment.
func (s *RegistryService) AssignFaculty(subjectID, facultyID string) (*models.Subject, error) {
	sub, err := s.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	if facultyID != "" {
		if err := s.requireFaculty(facultyID); err != nil {
			return nil, err
		}
	}
	sub.FacultyID = facultyID
	if err := s.store.UpdateSubject(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *RegistryService) SetSubjectActive(subjectID string, active bool) (*models.Subject, error) {
	sub, err := s.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	sub.Active = active
	if err := s.store.UpdateSubject(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *RegistryService) DeleteSubject(id string) error {
	ok, err := s.store.DeleteSubject(id)
	return deleted(ok, err, "subject not found")
}

func (s *RegistryService) CreateFaculty(in FacultyInput) (*models.Faculty, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	f := &models.Faculty{
		ID:         s.newID(),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Department: strings.TrimSpace(in.Department),
	}
	if err := s.store.InsertFaculty(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *RegistryService) ListFaculty() ([]*models.Faculty, error) { return s.store.ListFaculty() }

func (s *RegistryService) GetFaculty(id string) (*models.Faculty, error) {
	f, err := s.store.GetFaculty(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, NewNotFoundError("faculty not found")
	}
	return f, nil
}

func (s *RegistryService) DeleteFaculty(id string) error {
	ok, err := s.store.DeleteFaculty(id)
	return deleted(ok, err, "faculty not found")
}

func (s *RegistryService) CreateForm(in FormInput) (*models.FeedbackForm, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	questions, err := normalizeQuestions(in.Questions, s.newID)
	if err != nil {
		return nil, err
	}
	form := &models.FeedbackForm{
		ID:            s.newID(),
		Title:         strings.TrimSpace(in.Title),
		Active:        in.Active,
		SchemaVersion: 1,
		Questions:     questions,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.InsertForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *RegistryService) ListForms() ([]*models.FeedbackForm, error) { return s.store.ListForms() }

func (s *RegistryService) GetForm(id string) (*models.FeedbackForm, error) {
	form, err := s.store.GetForm(id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, NewNotFoundError("form not found")
	}
	return form, nil
}

// UpdateForm replaces a form's title and questions. Changing the questions
// bumps the schema version; existing records keep their own snapshot, so
// historical analytics are unaffected.
func (s *RegistryService) UpdateForm(id string, in FormInput) (*models.FeedbackForm, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	form, err := s.GetForm(id)
	if err != nil {
		return nil, err
	}
	questions, err := normalizeQuestions(in.Questions, s.newID)
	if err != nil {
		return nil, err
	}
	form.Title = strings.TrimSpace(in.Title)
	form.Active = in.Active
	form.SchemaVersion++
	form.Questions = questions
	if err := s.store.UpdateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *RegistryService) SetFormActive(id string, active bool) (*models.FeedbackForm, error) {
	form, err := s.GetForm(id)
	if err != nil {
		return nil, err
	}
	form.Active = active
	if err := s.store.UpdateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *RegistryService) DeleteForm(id string) error {
	ok, err := s.store.DeleteForm(id)
	return deleted(ok, err, "form not found")
}

func (s *RegistryService) requireFaculty(id string) error {
	f, err := s.store.GetFaculty(id)
	if err != nil {
		return err
	}
	if f == nil {
		return NewNotFoundError("faculty not found")
	}
	return nil
}

func normalizeQuestions(qs []models.Question, newID func() string) ([]models.Question, error) {
	out := models.CloneQuestions(qs)
	for i := range out {
		q := &out[i]
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return nil, NewInvalidError(fmt.Sprintf("question %d: text is required", i+1))
		}
		if !models.ValidQuestionType(q.Type) {
			return nil, NewInvalidError(fmt.Sprintf("question %d: unknown type %q", i+1, q.Type))
		}
		if q.ID == "" {
			q.ID = newID()
		}
		switch q.Type {
		case models.QuestionScale:
			if q.ScaleMin == 0 && q.ScaleMax == 0 {
				q.ScaleMin, q.ScaleMax = 1, 5
			}
			if q.ScaleMax <= q.ScaleMin {
				return nil, NewInvalidError(fmt.Sprintf("question %d: scale_max must exceed scale_min", i+1))
			}
		case models.QuestionMultipleChoice:
			if len(q.Options) < 2 {
				return nil, NewInvalidError(fmt.Sprintf("question %d: at least two options required", i+1))
			}
		}
	}
	return out, nil
}

func deleted(ok bool, err error, msg string) error {
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError(msg)
	}
	return nil
}
