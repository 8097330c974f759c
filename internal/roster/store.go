package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/gradekeeper/internal/record"
	"github.com/jeanpaul/gradekeeper/internal/schema"
)

// DefaultFile is the data file used when nothing else is configured.
const DefaultFile = "students.json"

// ErrMalformedRoster marks a data file that exists but cannot be decoded.
var ErrMalformedRoster = errors.New("malformed roster file")

// LoadError is returned when a data file exists but cannot be turned into a roster.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrMalformedRoster, e.Err} }

// Store holds the ordered roster and persists it as a JSON array.
// It is not safe for concurrent use.
type Store struct {
	students  []*record.Student
	validator *schema.Validator
	log       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithValidator sets the schema validator applied on Load. Passing nil
// disables schema checks; record-level field checks still apply.
func WithValidator(v *schema.Validator) Option {
	return func(s *Store) { s.validator = v }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		students:  []*record.Student{},
		validator: schema.NewValidator(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a student to the end of the roster.
func (s *Store) Add(st *record.Student) Result {
	s.students = append(s.students, st)
	s.log.Debug().Str("student_id", st.ID).Int("courses", len(st.Courses)).Msg("student added")
	return result(StatusOK, "Student %q added.", st.ID)
}

// Find returns the first student with the given id.
func (s *Store) Find(id string) (*record.Student, Result) {
	for _, st := range s.students {
		if st.ID == id {
			return st, Result{Status: StatusOK}
		}
	}
	return nil, result(StatusStudentNotFound, "Student %q not found.", id)
}

// UpdateGrade overwrites an existing course grade of the first student with id.
func (s *Store) UpdateGrade(id, course string, grade float64) Result {
	st, res := s.Find(id)
	if st == nil {
		s.log.Warn().Str("student_id", id).Msg("update grade: student not found")
		return res
	}
	if err := st.UpdateCourse(course, grade); err != nil {
		s.log.Warn().Str("student_id", id).Str("course", course).Msg("update grade: course not found")
		return result(StatusCourseNotFound, "Course %q not found.", course)
	}
	s.log.Debug().Str("student_id", id).Str("course", course).Float64("grade", grade).Msg("grade updated")
	return result(StatusOK, "Grade updated.")
}

// Students returns the roster in order. The slice is a copy; the students are not.
func (s *Store) Students() []*record.Student {
	out := make([]*record.Student, len(s.students))
	copy(out, s.students)
	return out
}

// Len returns the number of students in the roster.
func (s *Store) Len() int {
	return len(s.students)
}

// Replace swaps the whole roster for the given students.
func (s *Store) Replace(students []*record.Student) {
	s.students = append([]*record.Student{}, students...)
}

// Encode returns the JSON document Save would write.
func (s *Store) Encode() ([]byte, error) {
	records := make([]record.Record, 0, len(s.students))
	for _, st := range s.students {
		records = append(records, st.Record())
	}
	return json.MarshalIndent(records, "", "  ")
}

// Save overwrites path with the whole roster.
func (s *Store) Save(path string) (Result, error) {
	data, err := s.Encode()
	if err != nil {
		return Result{}, fmt.Errorf("encode roster: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Result{}, err
	}

	s.log.Info().Str("path", path).Int("students", len(s.students)).Msg("roster saved")
	return result(StatusSaved, "Data saved to %s.", path), nil
}

// Load replaces the roster with the contents of path. A missing file leaves
// an empty roster and is reported through the Result, not as an error. A file
// that cannot be decoded leaves the roster untouched and returns a *LoadError.
func (s *Store) Load(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.students = []*record.Student{}
			s.log.Info().Str("path", path).Msg("no roster file, starting empty")
			return result(StatusFileNotFound, "File %s not found. Starting with an empty list.", path), nil
		}
		return Result{}, err
	}

	students, err := s.decode(data)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("roster file rejected")
		return Result{}, &LoadError{Path: path, Err: err}
	}

	s.students = students
	s.log.Info().Str("path", path).Int("students", len(students)).Msg("roster loaded")
	return result(StatusLoaded, "Data loaded from %s.", path), nil
}

func (s *Store) decode(data []byte) ([]*record.Student, error) {
	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	// Syntax errors are reported by json first; the schema pass then names
	// missing or mistyped fields.
	if s.validator != nil {
		if err := s.validator.ValidateRoster(data); err != nil {
			return nil, err
		}
	}

	students := make([]*record.Student, 0, len(records))
	for i, r := range records {
		st, err := record.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		students = append(students, st)
	}
	return students, nil
}
