// Package console is the line-oriented front end: a numbered menu read from
// an input stream, one roster operation per choice.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/gradekeeper/internal/record"
	"github.com/jeanpaul/gradekeeper/internal/report"
	"github.com/jeanpaul/gradekeeper/internal/roster"
)

const menu = `
===== Student Grade Management System =====
1. Add Student
2. View All Students
3. Update Student Grade
4. Save Data
5. Exit`

// Options configures a console session.
type Options struct {
	DataFile       string
	AutosaveOnExit bool
	Logger         zerolog.Logger
}

// Console drives a roster store from text input.
type Console struct {
	store *roster.Store
	opts  Options
	in    *bufio.Scanner
	out   io.Writer
}

// New creates a console reading from in and writing to out.
func New(store *roster.Store, in io.Reader, out io.Writer, opts Options) *Console {
	if opts.DataFile == "" {
		opts.DataFile = roster.DefaultFile
	}
	return &Console{
		store: store,
		opts:  opts,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run loads the data file and serves the menu until Exit or end of input.
// A malformed data file or a failed read of the input is returned as an error.
func (c *Console) Run() error {
	res, err := c.store.Load(c.opts.DataFile)
	if err != nil {
		return err
	}
	c.println(res.String())

	for {
		c.println(menu)
		choice, ok := c.prompt("Choose an option (1-5): ")
		if !ok {
			if err := c.in.Err(); err != nil {
				c.opts.Logger.Error().Err(err).Msg("read input")
				return fmt.Errorf("read input: %w", err)
			}
			return c.exit()
		}

		switch choice {
		case "1":
			c.addStudent()
		case "2":
			c.viewAll()
		case "3":
			c.updateGrade()
		case "4":
			c.save()
		case "5":
			return c.exit()
		default:
			c.println("Invalid choice. Try again.")
		}
	}
}

func (c *Console) addStudent() {
	name, ok := c.prompt("Enter student name: ")
	if !ok {
		return
	}
	id, ok := c.prompt("Enter student ID: ")
	if !ok {
		return
	}
	st := record.New(name, id)

	for {
		course, ok := c.prompt("Enter course name (or 'done' to finish): ")
		if !ok || strings.EqualFold(course, "done") {
			break
		}
		text, ok := c.prompt(fmt.Sprintf("Enter grade for %s: ", course))
		if !ok {
			break
		}
		grade, err := record.ParseGrade(text)
		if err != nil {
			c.println("Invalid grade. Please enter a number.")
			continue
		}
		st.AddCourse(course, grade)
	}

	c.store.Add(st)
	c.println("Student added successfully!\n")
}

func (c *Console) viewAll() {
	c.println(report.Plain(c.store.Students()))
}

func (c *Console) updateGrade() {
	id, ok := c.prompt("Enter student ID: ")
	if !ok {
		return
	}
	if _, res := c.store.Find(id); !res.OK() {
		c.println(res.String())
		return
	}

	course, ok := c.prompt("Enter course name to update: ")
	if !ok {
		return
	}
	text, ok := c.prompt("Enter new grade: ")
	if !ok {
		return
	}
	grade, err := record.ParseGrade(text)
	if err != nil {
		c.println("Invalid grade input.")
		return
	}
	c.println(c.store.UpdateGrade(id, course, grade).String())
}

func (c *Console) save() {
	res, err := c.store.Save(c.opts.DataFile)
	if err != nil {
		c.opts.Logger.Error().Err(err).Msg("save failed")
		c.println(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.println(res.String())
}

func (c *Console) exit() error {
	if c.opts.AutosaveOnExit {
		c.save()
	}
	c.println("Exiting... Goodbye!")
	return nil
}

// prompt writes label and reads one line with surrounding spaces trimmed.
// ok is false at end of input or when reading fails; see c.in.Err.
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
