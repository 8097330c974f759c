package record

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrCourseNotFound is returned by UpdateCourse when the course has no grade yet.
var ErrCourseNotFound = errors.New("course not found")

// Student is a single tracked student and their course grades.
type Student struct {
	ID      string
	Name    string
	Courses map[string]float64
}

// New creates a student with an empty course mapping.
func New(name, id string) *Student {
	return &Student{
		ID:      id,
		Name:    name,
		Courses: make(map[string]float64),
	}
}

// AddCourse sets the grade for course, overwriting any previous grade.
func (s *Student) AddCourse(course string, grade float64) {
	if s.Courses == nil {
		s.Courses = make(map[string]float64)
	}
	s.Courses[course] = grade
}

// UpdateCourse overwrites the grade of an existing course.
// The mapping is left untouched when the course is unknown.
func (s *Student) UpdateCourse(course string, grade float64) error {
	if _, ok := s.Courses[course]; !ok {
		return fmt.Errorf("%w: %q", ErrCourseNotFound, course)
	}
	s.Courses[course] = grade
	return nil
}

// Grade returns the grade for course and whether it exists.
func (s *Student) Grade(course string) (float64, bool) {
	g, ok := s.Courses[course]
	return g, ok
}

// CourseNames returns the course names in sorted order.
func (s *Student) CourseNames() []string {
	names := make([]string, 0, len(s.Courses))
	for name := range s.Courses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Average returns the mean grade rounded to two decimals, half away from zero.
// A student without courses averages 0.
func (s *Student) Average() float64 {
	if len(s.Courses) == 0 {
		return 0
	}
	// Sum in key order so the float result does not depend on map iteration.
	var total float64
	for _, name := range s.CourseNames() {
		total += s.Courses[name]
	}
	return Round2(total / float64(len(s.Courses)))
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ErrInvalidGrade is returned by ParseGrade for text that is not a finite number.
var ErrInvalidGrade = errors.New("invalid grade")

// ParseGrade reads a grade typed by a user. NaN and infinities are rejected
// because they cannot be written to the JSON data file.
func ParseGrade(s string) (float64, error) {
	g, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	return g, nil
}
