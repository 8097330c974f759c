// Package sheet moves rosters in and out of Excel workbooks.
//
// Layout: a header row "Student ID | Name | <course>... | Average", then one
// row per student. The Average column is written on export and ignored on
// import.
package sheet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/gradekeeper/internal/record"
)

const (
	headerID      = "Student ID"
	headerName    = "Name"
	headerAverage = "Average"
)

// ErrNoSheets is returned for a workbook without any sheet.
var ErrNoSheets = errors.New("workbook does not contain any sheets")

// CellError reports a grade cell that does not hold a finite number.
type CellError struct {
	File  string
	Cell  string
	Value string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: cell %s: grade %q is not a finite number", e.File, e.Cell, e.Value)
}

// Export writes students to a new workbook at path, one row per student.
func Export(students []*record.Student, path, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	courses := courseUnion(students)
	header := []any{headerID, headerName}
	for _, c := range courses {
		header = append(header, c)
	}
	header = append(header, headerAverage)

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, st := range students {
		row := []any{st.ID, st.Name}
		for _, c := range courses {
			if g, ok := st.Grade(c); ok {
				row = append(row, g)
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, st.Average())

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// Import reads students from the first sheet of the workbook at path.
// Rows missing an id or a name are skipped; empty grade cells are skipped.
func Import(path string) ([]*record.Student, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return []*record.Student{}, nil
	}

	header := rows[0]
	students := make([]*record.Student, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		id, name := cellAt(row, 0), cellAt(row, 1)
		if id == "" || name == "" {
			continue
		}

		st := record.New(name, id)
		for col := 2; col < len(header) && col < len(row); col++ {
			course := strings.TrimSpace(header[col])
			value := strings.TrimSpace(row[col])
			if course == "" || strings.EqualFold(course, headerAverage) || value == "" {
				continue
			}
			grade, err := record.ParseGrade(value)
			if err != nil {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
				return nil, &CellError{File: path, Cell: cell, Value: value}
			}
			st.AddCourse(course, grade)
		}
		students = append(students, st)
	}
	return students, nil
}

// ImportGlob imports every workbook matching pattern (doublestar syntax, so
// "grades/**/*.xlsx" works) in lexical file order. It returns the students and
// the files they came from.
func ImportGlob(pattern string) ([]*record.Student, []string, error) {
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no workbooks match %q", pattern)
	}
	sort.Strings(files)

	var all []*record.Student
	for _, file := range files {
		students, err := Import(file)
		if err != nil {
			return nil, files, err
		}
		all = append(all, students...)
	}
	return all, files, nil
}

func courseUnion(students []*record.Student) []string {
	seen := make(map[string]bool)
	var names []string
	for _, st := range students {
		for c := range st.Courses {
			if !seen[c] {
				seen[c] = true
				names = append(names, c)
			}
		}
	}
	sort.Strings(names)
	return names
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
