package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/gradekeeper/internal/record"
)

// Separator frames each student in the plain listing.
var Separator = strings.Repeat("=", 40)

// FormatGrade prints a grade the way it was typed: 90 stays 90, 80.5 stays 80.5.
func FormatGrade(g float64) string {
	return strconv.FormatFloat(g, 'f', -1, 64)
}

// Summary is the multi-line text block for one student.
func Summary(s *record.Student) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", s.Name)
	fmt.Fprintf(&b, "ID: %s\n", s.ID)
	b.WriteString("Courses:\n")
	for _, c := range s.CourseNames() {
		fmt.Fprintf(&b, "  %s: %s\n", c, FormatGrade(s.Courses[c]))
	}
	fmt.Fprintf(&b, "GPA: %s", FormatGrade(s.Average()))
	return b.String()
}

// Plain lists every student between separator lines.
func Plain(students []*record.Student) string {
	if len(students) == 0 {
		return "No students available."
	}
	var b strings.Builder
	for i, s := range students {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Separator + "\n")
		b.WriteString(Summary(s) + "\n")
		b.WriteString(Separator)
	}
	return b.String()
}

// Markdown renders the roster as a markdown table.
func Markdown(students []*record.Student) string {
	var b strings.Builder
	b.WriteString("# Student Grades\n\n")
	if len(students) == 0 {
		b.WriteString("_No students available._\n")
		return b.String()
	}

	b.WriteString("| ID | Name | Courses | Average |\n")
	b.WriteString("|----|------|---------|---------|\n")
	for _, s := range students {
		courses := make([]string, 0, len(s.Courses))
		for _, c := range s.CourseNames() {
			courses = append(courses, fmt.Sprintf("%s: %s", escape(c), FormatGrade(s.Courses[c])))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escape(s.ID), escape(s.Name), strings.Join(courses, ", "), FormatGrade(s.Average()))
	}
	fmt.Fprintf(&b, "\n%d student(s)\n", len(students))
	return b.String()
}

// Render formats markdown for the terminal. Width <= 0 means 80 columns.
func Render(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
