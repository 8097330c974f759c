package record

import (
	"encoding/json"
	"fmt"
)

// Record is the plain persisted form of a Student.
type Record struct {
	Name      string             `json:"name"`
	StudentID string             `json:"student_id"`
	Courses   map[string]float64 `json:"courses"`

	// set by UnmarshalJSON, used by FromRecord to report missing fields
	present fieldSet
}

type fieldSet uint8

const (
	hasName fieldSet = 1 << iota
	hasStudentID
	hasCourses

	allFields = hasName | hasStudentID | hasCourses
)

// ParseError reports a persisted record that cannot become a Student.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse student record: field %q %s", e.Field, e.Reason)
}

// Record converts the student into its persisted form.
func (s *Student) Record() Record {
	courses := make(map[string]float64, len(s.Courses))
	for k, v := range s.Courses {
		courses[k] = v
	}
	return Record{
		Name:      s.Name,
		StudentID: s.ID,
		Courses:   courses,
		present:   allFields,
	}
}

// UnmarshalJSON decodes a record while noting which fields were present.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      *string             `json:"name"`
		StudentID *string             `json:"student_id"`
		Courses   *map[string]float64 `json:"courses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{}
	if raw.Name != nil {
		r.Name = *raw.Name
		r.present |= hasName
	}
	if raw.StudentID != nil {
		r.StudentID = *raw.StudentID
		r.present |= hasStudentID
	}
	if raw.Courses != nil && *raw.Courses != nil {
		r.Courses = *raw.Courses
		r.present |= hasCourses
	}
	return nil
}

// FromRecord builds a Student from its persisted form.
// Records decoded from JSON must carry all three fields; records built in
// code are accepted as long as Courses is non-nil.
func FromRecord(r Record) (*Student, error) {
	decoded := r.present != 0
	switch {
	case decoded && r.present&hasName == 0:
		return nil, &ParseError{Field: "name", Reason: "is missing"}
	case decoded && r.present&hasStudentID == 0:
		return nil, &ParseError{Field: "student_id", Reason: "is missing"}
	case r.Courses == nil:
		return nil, &ParseError{Field: "courses", Reason: "is missing"}
	}

	s := New(r.Name, r.StudentID)
	for k, v := range r.Courses {
		s.Courses[k] = v
	}
	return s, nil
}
