package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeanpaul/gradekeeper/internal/config"
	"github.com/jeanpaul/gradekeeper/internal/diff"
	"github.com/jeanpaul/gradekeeper/internal/logger"
	"github.com/jeanpaul/gradekeeper/internal/report"
	"github.com/jeanpaul/gradekeeper/internal/roster"
	"github.com/jeanpaul/gradekeeper/internal/schema"
	"github.com/jeanpaul/gradekeeper/internal/sheet"
	"github.com/jeanpaul/gradekeeper/internal/tui"
)

// env is what every command needs: config, a session logger and the store.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *roster.Store
	logFile io.Closer
}

func newEnv(cfg *config.Config) (*env, error) {
	w, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	lc := cfg.LoggerConfig()
	lc.Output = w

	log := logger.New(lc).With().Str("session", uuid.New().String()).Logger()
	store := roster.New(
		roster.WithLogger(log),
		roster.WithValidator(schema.NewValidator()),
	)
	return &env{cfg: cfg, log: log, store: store, logFile: w}, nil
}

func (e *env) load() (roster.Result, error) {
	return e.store.Load(e.cfg.DataFile)
}

func (e *env) Close() {
	if e.logFile != nil {
		e.logFile.Close()
		e.logFile = nil
	}
}

func cmdList(e *env, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	plain := fs.Bool("plain", false, "Plain text instead of rendered markdown")
	fs.SetOutput(w)
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := e.load()
	if err != nil {
		return err
	}
	if res.Status == roster.StatusFileNotFound {
		fmt.Fprintln(w, tui.HelpStyle.Render(res.String()))
	}

	students := e.store.Students()
	if *plain {
		fmt.Fprintln(w, report.Plain(students))
		return nil
	}
	out, err := report.Render(report.Markdown(students), 0)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}

func cmdExport(e *env, w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: gradekeeper export <file.xlsx>")
	}
	path := args[0]
	if filepath.Ext(path) != ".xlsx" {
		return fmt.Errorf("export target %s must end in .xlsx", path)
	}

	if _, err := e.load(); err != nil {
		return err
	}
	if err := sheet.Export(e.store.Students(), path, e.cfg.Export.Sheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	e.log.Info().Str("path", path).Int("students", e.store.Len()).Msg("roster exported")
	fmt.Fprintf(w, "Exported %d student(s) to %s\n", e.store.Len(), path)
	return nil
}

func cmdImport(e *env, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	merge := fs.Bool("merge", false, "Append to the existing roster instead of replacing it")
	dryRun := fs.Bool("dry-run", false, "Show the change to the data file without writing it")
	fs.SetOutput(w)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: gradekeeper import [-merge] [-dry-run] <glob>")
	}

	students, files, err := sheet.ImportGlob(fs.Arg(0))
	if err != nil {
		return err
	}

	if *merge {
		if _, err := e.load(); err != nil {
			return err
		}
		for _, st := range students {
			e.store.Add(st)
		}
	} else {
		e.store.Replace(students)
	}

	if *dryRun {
		data, err := e.store.Encode()
		if err != nil {
			return err
		}
		d, err := diff.Unsaved(e.cfg.DataFile, data)
		if err != nil {
			return err
		}
		if d == "" {
			fmt.Fprintln(w, "No changes.")
		} else {
			fmt.Fprint(w, d)
		}
		return nil
	}

	res, err := e.store.Save(e.cfg.DataFile)
	if err != nil {
		return err
	}
	e.log.Info().Strs("files", files).Int("students", len(students)).Bool("merge", *merge).Msg("workbooks imported")
	fmt.Fprintf(w, "Imported %d student(s) from %d file(s). %s\n", len(students), len(files), res)
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	if len(args) == 0 || args[0] != "init" {
		return errors.New("usage: gradekeeper config init [path]")
	}
	path := filepath.Join(config.Dir(), "config.yaml")
	if len(args) > 1 {
		path = args[1]
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote default config to %s\n", path)
	return nil
}
