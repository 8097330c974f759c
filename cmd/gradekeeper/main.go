package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/gradekeeper/internal/config"
	"github.com/jeanpaul/gradekeeper/internal/console"
	"github.com/jeanpaul/gradekeeper/internal/tui"
	"github.com/jeanpaul/gradekeeper/pkg/version"
)

func main() {
	dataFlag := flag.String("data", "", "Roster data file (overrides data_file from config)")
	plainFlag := flag.Bool("plain", false, "Use the line-oriented menu instead of the TUI")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("gradekeeper %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	// Commands that must work without a valid config
	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "config":
			if err := cmdConfig(os.Stdout, args[1:]); err != nil {
				fatal("%s", err)
			}
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}

	e, err := newEnv(cfg)
	if err != nil {
		fatal("%s", err)
	}
	defer e.Close()

	if len(args) > 0 {
		switch args[0] {
		case "list":
			err = cmdList(e, os.Stdout, args[1:])
		case "export":
			err = cmdExport(e, os.Stdout, args[1:])
		case "import":
			err = cmdImport(e, os.Stdout, args[1:])
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			showHelp()
			os.Exit(2)
		}
		if err != nil {
			e.log.Error().Err(err).Str("command", args[0]).Msg("command failed")
			e.Close()
			fatal("%s", err)
		}
		return
	}

	if *plainFlag || !isTerminal() {
		launchConsole(e)
		return
	}
	launchTUI(e)
}

func launchConsole(e *env) {
	c := console.New(e.store, os.Stdin, os.Stdout, console.Options{
		DataFile:       e.cfg.DataFile,
		AutosaveOnExit: e.cfg.AutosaveOnExit,
		Logger:         e.log,
	})
	if err := c.Run(); err != nil {
		e.Close()
		fatal("%s", err)
	}
}

func launchTUI(e *env) {
	res, err := e.load()
	if err != nil {
		e.Close()
		fatal("%s", err)
	}

	fmt.Print(tui.BannerStyle.Render(tui.Banner))
	fmt.Println()

	m := tui.NewModel(e.store, tui.Options{
		DataFile:       e.cfg.DataFile,
		Theme:          e.cfg.Theme,
		AutosaveOnExit: e.cfg.AutosaveOnExit,
		Logger:         e.log,
	})
	m.SetStatus(res)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		e.Close()
		fatal("TUI error: %s", err)
	}
	if fm, ok := final.(tui.Model); ok && fm.Dirty() {
		fmt.Println(tui.HelpStyle.Render("  Unsaved changes were discarded."))
	}
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.BannerStyle.Render("gradekeeper") + ` - track students and course grades from the terminal

` + tui.LabelStyle.Render("USAGE:") + `
  gradekeeper [flags]                 Start the interactive menu
  gradekeeper <command> [args]        Run a command

` + tui.LabelStyle.Render("COMMANDS:") + `
  list [-plain]                       Print every student with their average
  export <file.xlsx>                  Write the roster to an Excel workbook
  import [-merge] [-dry-run] <glob>   Load students from workbooks (e.g. 'grades/**/*.xlsx')
  config init [path]                  Write a default config.yaml
  help                                Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  --data <file>                       Roster data file (default students.json)
  --plain                             Line-oriented menu instead of the TUI
  --version                           Show version
  --help, -h                          Show this help

` + tui.LabelStyle.Render("CONFIG:") + `
  ./config.yaml or ` + config.Dir() + `/config.yaml
  Environment overrides use the GRADEKEEPER_ prefix, e.g. GRADEKEEPER_DATA_FILE.
`
	fmt.Println(help)
}
