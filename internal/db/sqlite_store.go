package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/classpulse/classpulse/internal/models"
)

// SQLiteStore implements every service store interface over a single sqlite
// database. Form questions and response answer sets are stored as JSON
// columns; the snapshot travels with the record.
type SQLiteStore struct {
	db *sql.DB
}

func Open(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// --- admins ---

func (s *SQLiteStore) InsertAdmin(a *models.Admin) error {
	_, err := s.db.Exec(
		`INSERT INTO admins (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Name, a.PasswordHash, a.CreatedAt)
	return err
}

func (s *SQLiteStore) GetAdminByEmail(email string) (*models.Admin, error) {
	row := s.db.QueryRow(
		`SELECT id, email, name, password_hash, created_at FROM admins WHERE email = ?`, email)
	a := &models.Admin{}
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SQLiteStore) CountAdmins() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

// --- courses ---

func (s *SQLiteStore) InsertCourse(c *models.Course) error {
	_, err := s.db.Exec(`INSERT INTO courses (id, name, code) VALUES (?, ?, ?)`, c.ID, c.Name, c.Code)
	return err
}

func (s *SQLiteStore) GetCourse(id string) (*models.Course, error) {
	row := s.db.QueryRow(`SELECT id, name, code FROM courses WHERE id = ?`, id)
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Name, &c.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteStore) ListCourses() ([]*models.Course, error) {
	rows, err := s.db.Query(`SELECT id, name, code FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Course{}
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Code); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteCourse(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// --- faculty ---

func (s *SQLiteStore) InsertFaculty(f *models.Faculty) error {
	_, err := s.db.Exec(
		`INSERT INTO faculty (id, name, email, department) VALUES (?, ?, ?, ?)`,
		f.ID, f.Name, toNullString(f.Email), toNullString(f.Department))
	return err
}

func (s *SQLiteStore) GetFaculty(id string) (*models.Faculty, error) {
	row := s.db.QueryRow(`SELECT id, name, email, department FROM faculty WHERE id = ?`, id)
	return scanFaculty(row)
}

func (s *SQLiteStore) ListFaculty() ([]*models.Faculty, error) {
	rows, err := s.db.Query(`SELECT id, name, email, department FROM faculty ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Faculty{}
	for rows.Next() {
		f := &models.Faculty{}
		var email, dept sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &email, &dept); err != nil {
			return nil, err
		}
		f.Email, f.Department = fromNullString(email), fromNullString(dept)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteFaculty(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM faculty WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanFaculty(row *sql.Row) (*models.Faculty, error) {
	f := &models.Faculty{}
	var email, dept sql.NullString
	err := row.Scan(&f.ID, &f.Name, &email, &dept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.Email, f.Department = fromNullString(email), fromNullString(dept)
	return f, nil
}

// --- subjects ---

func (s *SQLiteStore) InsertSubject(sub *models.Subject) error {
	_, err := s.db.Exec(
		`INSERT INTO subjects (id, name, course_id, faculty_id, active) VALUES (?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, toNullString(sub.CourseID), toNullString(sub.FacultyID), boolToInt(sub.Active))
	return err
}

func (s *SQLiteStore) UpdateSubject(sub *models.Subject) error {
	_, err := s.db.Exec(
		`UPDATE subjects SET name = ?, course_id = ?, faculty_id = ?, active = ? WHERE id = ?`,
		sub.Name, toNullString(sub.CourseID), toNullString(sub.FacultyID), boolToInt(sub.Active), sub.ID)
	return err
}

func (s *SQLiteStore) GetSubject(id string) (*models.Subject, error) {
	row := s.db.QueryRow(
		`SELECT id, name, course_id, faculty_id, active FROM subjects WHERE id = ?`, id)
	sub := &models.Subject{}
	var courseID, facultyID sql.NullString
	var active int
	err := row.Scan(&sub.ID, &sub.Name, &courseID, &facultyID, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sub.CourseID, sub.FacultyID, sub.Active = fromNullString(courseID), fromNullString(facultyID), active != 0
	return sub, nil
}

func (s *SQLiteStore) ListSubjects() ([]*models.Subject, error) {
	return s.querySubjects(`SELECT id, name, course_id, faculty_id, active FROM subjects ORDER BY name`)
}

func (s *SQLiteStore) ListSubjectsByFaculty(facultyID string) ([]*models.Subject, error) {
	return s.querySubjects(
		`SELECT id, name, course_id, faculty_id, active FROM subjects WHERE faculty_id = ? ORDER BY name`,
		facultyID)
}

func (s *SQLiteStore) querySubjects(query string, args ...any) ([]*models.Subject, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Subject{}
	for rows.Next() {
		sub := &models.Subject{}
		var courseID, facultyID sql.NullString
		var active int
		if err := rows.Scan(&sub.ID, &sub.Name, &courseID, &facultyID, &active); err != nil {
			return nil, err
		}
		sub.CourseID, sub.FacultyID, sub.Active = fromNullString(courseID), fromNullString(facultyID), active != 0
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteSubject(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// --- forms ---

func (s *SQLiteStore) InsertForm(form *models.FeedbackForm) error {
	questions, err := encodeJSON(form.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO forms (id, title, active, schema_version, questions, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		form.ID, form.Title, boolToInt(form.Active), form.SchemaVersion, questions, form.CreatedAt)
	return err
}

func (s *SQLiteStore) UpdateForm(form *models.FeedbackForm) error {
	questions, err := encodeJSON(form.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE forms SET title = ?, active = ?, schema_version = ?, questions = ? WHERE id = ?`,
		form.Title, boolToInt(form.Active), form.SchemaVersion, questions, form.ID)
	return err
}

func (s *SQLiteStore) GetForm(id string) (*models.FeedbackForm, error) {
	row := s.db.QueryRow(
		`SELECT id, title, active, schema_version, questions, created_at FROM forms WHERE id = ?`, id)
	form := &models.FeedbackForm{}
	var active int
	var questions string
	err := row.Scan(&form.ID, &form.Title, &active, &form.SchemaVersion, &questions, &form.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	form.Active = active != 0
	if err := json.Unmarshal([]byte(questions), &form.Questions); err != nil {
		return nil, fmt.Errorf("decode form %s questions: %w", form.ID, err)
	}
	return form, nil
}

func (s *SQLiteStore) ListForms() ([]*models.FeedbackForm, error) {
	rows, err := s.db.Query(
		`SELECT id, title, active, schema_version, questions, created_at FROM forms ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.FeedbackForm{}
	for rows.Next() {
		form := &models.FeedbackForm{}
		var active int
		var questions string
		if err := rows.Scan(&form.ID, &form.Title, &active, &form.SchemaVersion, &questions, &form.CreatedAt); err != nil {
			return nil, err
		}
		form.Active = active != 0
		if err := json.Unmarshal([]byte(questions), &form.Questions); err != nil {
			return nil, fmt.Errorf("decode form %s questions: %w", form.ID, err)
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteForm(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM forms WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// --- responses ---

func (s *SQLiteStore) InsertResponse(rec *models.ResponseRecord) error {
	answerSets, err := encodeJSON(rec.AnswerSets)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO responses
		   (id, student_name, roll_number, phone, course_id, year, semester, created_at, submitted_at, answer_sets)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StudentName, rec.RollNumber, toNullString(rec.Phone),
		rec.CourseID, rec.Year, rec.Semester, rec.CreatedAt, rec.SubmittedAt, answerSets)
	if err != nil && isUniqueViolation(err) {
		return models.ErrDuplicateResponse
	}
	return err
}

func (s *SQLiteStore) GetResponse(id string) (*models.ResponseRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, student_name, roll_number, phone, course_id, year, semester, created_at, submitted_at, answer_sets
		   FROM responses WHERE id = ?`, id)
	rec := &models.ResponseRecord{}
	var phone sql.NullString
	var answerSets string
	err := row.Scan(&rec.ID, &rec.StudentName, &rec.RollNumber, &phone, &rec.CourseID,
		&rec.Year, &rec.Semester, &rec.CreatedAt, &rec.SubmittedAt, &answerSets)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Phone = fromNullString(phone)
	if err := json.Unmarshal([]byte(answerSets), &rec.AnswerSets); err != nil {
		return nil, fmt.Errorf("decode response %s answer sets: %w", rec.ID, err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListResponses() ([]*models.ResponseRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, student_name, roll_number, phone, course_id, year, semester, created_at, submitted_at, answer_sets
		   FROM responses ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.ResponseRecord{}
	for rows.Next() {
		rec := &models.ResponseRecord{}
		var phone sql.NullString
		var answerSets string
		if err := rows.Scan(&rec.ID, &rec.StudentName, &rec.RollNumber, &phone, &rec.CourseID,
			&rec.Year, &rec.Semester, &rec.CreatedAt, &rec.SubmittedAt, &answerSets); err != nil {
			return nil, err
		}
		rec.Phone = fromNullString(phone)
		if err := json.Unmarshal([]byte(answerSets), &rec.AnswerSets); err != nil {
			return nil, fmt.Errorf("decode response %s answer sets: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteResponse(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM responses WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
