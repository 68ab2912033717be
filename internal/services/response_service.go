package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/classpulse/classpulse/internal/models"
)

// ResponseStore abstracts the persistence operations of the submission and
// record-management workflows.
type ResponseStore interface {
	FilterStore
	GetForm(id string) (*models.FeedbackForm, error)
	GetCourse(id string) (*models.Course, error)
	GetSubject(id string) (*models.Subject, error)
	InsertResponse(rec *models.ResponseRecord) error
	GetResponse(id string) (*models.ResponseRecord, error)
	DeleteResponse(id string) (bool, error)
}

type StudentInfo struct {
	Name       string `json:"name" validate:"required"`
	RollNumber string `json:"roll_number" validate:"required"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
}

type CourseInfo struct {
	CourseID string `json:"course_id" validate:"required"`
	Year     int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Semester int    `json:"semester" validate:"required,gte=1,lte=12"`
}

// SubjectSubmission carries one subject's answers in the flexible wire shape;
// each entry is positionally aligned with the form's questions.
type SubjectSubmission struct {
	SubjectID string            `json:"subject_id" validate:"required"`
	Answers   []json.RawMessage `json:"answers" validate:"required"`
}

type SubmitRequest struct {
	Student   StudentInfo         `json:"student_info"`
	Course    CourseInfo          `json:"course_info"`
	FormID    string              `json:"form_id" validate:"required"`
	Responses []SubjectSubmission `json:"responses" validate:"required,min=1,dive"`
	StartedAt *time.Time          `json:"started_at,omitempty"`
}

type ResponseService struct {
	store    ResponseStore
	filter   *ResponseFilter
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store:    store,
		filter:   NewResponseFilter(store),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Submit validates and persists one student submission. The form's questions
// are deep-copied into every answer set so the record stays self-contained,
// and the storage layer's unique index rejects duplicate submissions for the
// same (roll number, course, year, semester).
func (s *ResponseService) Submit(req SubmitRequest) (*models.ResponseRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	form, err := s.store.GetForm(req.FormID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, NewNotFoundError("feedback form not found")
	}
	if !form.Active {
		return nil, NewInvalidError("feedback form is not accepting responses")
	}
	course, err := s.store.GetCourse(req.Course.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, NewNotFoundError("course not found")
	}

	now := s.now()
	createdAt := now
	if req.StartedAt != nil && req.StartedAt.Before(now) {
		createdAt = req.StartedAt.UTC()
	}

	rec := &models.ResponseRecord{
		ID:          s.newID(),
		StudentName: strings.TrimSpace(req.Student.Name),
		RollNumber:  strings.TrimSpace(req.Student.RollNumber),
		Phone:       strings.TrimSpace(req.Student.Phone),
		CourseID:    req.Course.CourseID,
		Year:        req.Course.Year,
		Semester:    req.Course.Semester,
		CreatedAt:   createdAt,
		SubmittedAt: now,
		AnswerSets:  make([]models.SubjectAnswerSet, 0, len(req.Responses)),
	}

	for _, sub := range req.Responses {
		subject, err := s.store.GetSubject(sub.SubjectID)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, NewNotFoundError("subject not found: " + sub.SubjectID)
		}
		if len(sub.Answers) != len(form.Questions) {
			return nil, NewInvalidError(fmt.Sprintf(
				"subject %s: expected %d answers, got %d", sub.SubjectID, len(form.Questions), len(sub.Answers)))
		}
		answers := make([]models.AnswerValue, 0, len(sub.Answers))
		for i, raw := range sub.Answers {
			q := form.Questions[i]
			val, err := ParseAnswer(q, raw)
			if err != nil {
				return nil, NewInvalidError(fmt.Sprintf("subject %s, question %d: %v", sub.SubjectID, i+1, err))
			}
			answers = append(answers, val)
		}
		rec.AnswerSets = append(rec.AnswerSets, models.SubjectAnswerSet{
			SubjectID:     subject.ID,
			SubjectName:   subject.Name,
			FormID:        form.ID,
			SchemaVersion: form.SchemaVersion,
			Questions:     models.CloneQuestions(form.Questions),
			Answers:       answers,
		})
	}

	if err := s.store.InsertResponse(rec); err != nil {
		if errors.Is(err, models.ErrDuplicateResponse) {
			return nil, NewConflictError("feedback already submitted for this course and semester")
		}
		return nil, err
	}
	return rec, nil
}

// ParseAnswer decodes one wire answer against the declared question type,
// producing the tagged union arm for that type. JSON null and empty input mean
// the slot exists but was not answered.
func ParseAnswer(q models.Question, raw json.RawMessage) (models.AnswerValue, error) {
	out := models.AnswerValue{Type: q.Type}
	trimmed := strings.TrimSpace(string(raw))
	if len(raw) == 0 || trimmed == "null" {
		return out, nil
	}

	switch q.Type {
	case models.QuestionScale:
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
				return out, errors.New("scale answer must be an integer")
			}
			out.Scale, out.Answered = int(n), true
			return out, nil
		}
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			if str = strings.TrimSpace(str); str == "" {
				return out, nil
			}
			if v, err := strconv.Atoi(str); err == nil {
				out.Scale, out.Answered = v, true
				return out, nil
			}
		}
		return out, errors.New("scale answer must be an integer")
	case models.QuestionYesNo:
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			out.YesNo, out.Answered = b, true
			return out, nil
		}
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "":
				return out, nil
			case "yes":
				out.YesNo, out.Answered = true, true
				return out, nil
			case "no":
				out.YesNo, out.Answered = false, true
				return out, nil
			}
		}
		return out, errors.New(`yesno answer must be a boolean or "yes"/"no"`)
	case models.QuestionMultipleChoice:
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			if single == "" {
				return out, nil
			}
			out.Choice, out.Answered = single, true
			return out, nil
		}
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil {
			if len(many) == 0 {
				return out, nil
			}
			out.Choices, out.Answered = many, true
			return out, nil
		}
		return out, errors.New("multiplechoice answer must be a string or an array of strings")
	case models.QuestionText, models.QuestionTextarea:
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			out.Text, out.Answered = str, true
			return out, nil
		}
		return out, errors.New("text answer must be a string")
	}
	return out, fmt.Errorf("unsupported question type %q", q.Type)
}

// List returns one page of records matching the criteria, newest first.
func (s *ResponseService) List(criteria FilterCriteria, page, limit int) (*Page, error) {
	records, err := s.filter.Apply(criteria)
	if err != nil {
		return nil, err
	}
	p := Paginate(records, page, limit)
	return &p, nil
}

func (s *ResponseService) Get(id string) (*models.ResponseRecord, error) {
	rec, err := s.store.GetResponse(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewNotFoundError("response not found")
	}
	return rec, nil
}

func (s *ResponseService) Delete(id string) error {
	deleted, err := s.store.DeleteResponse(id)
	if err != nil {
		return err
	}
	if !deleted {
		return NewNotFoundError("response not found")
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return NewValidationError("invalid request", fields)
	}
	return NewInvalidError(err.Error())
}
