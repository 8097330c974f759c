package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage_EmptyIsZero(t *testing.T) {
	s := New("Ada", "S1")
	assert.Equal(t, 0.0, s.Average())
}

func TestAverage_Rounding(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("A", 90)
	s.AddCourse("B", 85)
	s.AddCourse("C", 80.01)
	// (90 + 85 + 80.01) / 3 = 85.003333
	assert.Equal(t, 85.0, s.Average())

	s.AddCourse("C", 80.04)
	// 255.04 / 3 = 85.013333
	assert.Equal(t, 85.01, s.Average())
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 2.5, Round2(2.5))
}

func TestAverage_InsertionOrderIndependent(t *testing.T) {
	a := New("A", "1")
	a.AddCourse("x", 0.1)
	a.AddCourse("y", 0.2)
	a.AddCourse("z", 0.7)

	b := New("B", "2")
	b.AddCourse("z", 0.7)
	b.AddCourse("y", 0.2)
	b.AddCourse("x", 0.1)

	assert.Equal(t, a.Average(), b.Average())
}

func TestAddCourse_Overwrites(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("Math", 70)
	s.AddCourse("Math", 95)
	s.AddCourse("Math", 95)

	assert.Len(t, s.Courses, 1)
	assert.Equal(t, 95.0, s.Courses["Math"])
}

func TestUpdateCourse_Unknown(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("Math", 90)

	err := s.UpdateCourse("Physics", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCourseNotFound))
	assert.Contains(t, err.Error(), "Physics")
	assert.Equal(t, map[string]float64{"Math": 90}, s.Courses)
}

func TestStudentScenario(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("Math", 90)
	s.AddCourse("CS", 80)
	assert.Equal(t, 85.0, s.Average())

	require.NoError(t, s.UpdateCourse("Math", 100))
	assert.Equal(t, 90.0, s.Average())

	assert.ErrorIs(t, s.UpdateCourse("Physics", 10), ErrCourseNotFound)
	assert.Equal(t, 90.0, s.Average())
}

func TestCourseNames_Sorted(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("Physics", 1)
	s.AddCourse("Art", 2)
	s.AddCourse("Math", 3)
	assert.Equal(t, []string{"Art", "Math", "Physics"}, s.CourseNames())
}

func TestRecordRoundTrip(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("Math", 90)
	s.AddCourse("CS", 80.5)

	data, err := json.Marshal(s.Record())
	require.NoError(t, err)

	var r Record
	require.NoError(t, json.Unmarshal(data, &r))
	got, err := FromRecord(r)
	require.NoError(t, err)

	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Courses, got.Courses)
}

func TestRecord_JSONFieldNames(t *testing.T) {
	s := New("Ada", "S1")
	s.AddCourse("Math", 90)

	data, err := json.Marshal(s.Record())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","student_id":"S1","courses":{"Math":90}}`, string(data))
}

func TestFromRecord_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"no name", `{"student_id":"S1","courses":{}}`, "name"},
		{"no id", `{"name":"Ada","courses":{}}`, "student_id"},
		{"no courses", `{"name":"Ada","student_id":"S1"}`, "courses"},
		{"null courses", `{"name":"Ada","student_id":"S1","courses":null}`, "courses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))

			_, err := FromRecord(r)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestRecord_WrongTypeFailsDecode(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"name":"Ada","student_id":"S1","courses":{"Math":"A"}}`), &r)
	assert.Error(t, err)
}

func TestFromRecord_InCodeRecord(t *testing.T) {
	s, err := FromRecord(Record{Name: "Bo", StudentID: "S2", Courses: map[string]float64{}})
	require.NoError(t, err)
	assert.Equal(t, "S2", s.ID)
	assert.Empty(t, s.Courses)
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade(" 87.5 ")
	require.NoError(t, err)
	assert.Equal(t, 87.5, g)

	g, err = ParseGrade("-3")
	require.NoError(t, err)
	assert.Equal(t, -3.0, g)

	for _, bad := range []string{"", "abc", "NaN", "inf", "9O"} {
		_, err := ParseGrade(bad)
		assert.ErrorIs(t, err, ErrInvalidGrade, bad)
	}
}
