package roster

import (
	"errors"
	"fmt"

	"github.com/jeanpaul/gradekeeper/internal/record"
)

// ErrStudentNotFound is the error form of StatusStudentNotFound.
var ErrStudentNotFound = errors.New("student not found")

// Status is the outcome of a roster operation.
type Status int

const (
	StatusOK Status = iota
	StatusLoaded
	StatusSaved
	StatusFileNotFound
	StatusStudentNotFound
	StatusCourseNotFound
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusLoaded:
		return "loaded"
	case StatusSaved:
		return "saved"
	case StatusFileNotFound:
		return "file not found"
	case StatusStudentNotFound:
		return "student not found"
	case StatusCourseNotFound:
		return "course not found"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is returned by every store operation so front ends can render the
// outcome however they like.
type Result struct {
	Status  Status
	Message string
}

// OK reports whether the operation did what was asked. A missing data file is
// a normal first run, so it counts as OK too.
func (r Result) OK() bool {
	switch r.Status {
	case StatusOK, StatusLoaded, StatusSaved, StatusFileNotFound:
		return true
	}
	return false
}

// NotFound reports a lookup miss on a student or a course.
func (r Result) NotFound() bool {
	return r.Status == StatusStudentNotFound || r.Status == StatusCourseNotFound
}

// Err converts a lookup miss into an error for callers that want one.
// It returns nil for every other status.
func (r Result) Err() error {
	switch r.Status {
	case StatusStudentNotFound:
		return fmt.Errorf("%w: %s", ErrStudentNotFound, r.Message)
	case StatusCourseNotFound:
		return fmt.Errorf("%w: %s", record.ErrCourseNotFound, r.Message)
	}
	return nil
}

func (r Result) String() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Status.String()
}

func result(s Status, format string, args ...any) Result {
	return Result{Status: s, Message: fmt.Sprintf(format, args...)}
}
