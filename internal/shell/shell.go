package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"cds-go/internal/cds"

	"github.com/charmbracelet/lipgloss"
)

// DefaultLogLimit is how many checkpoints "log" lists without an argument.
const DefaultLogLimit = 10

const helpText = `Commands:
  commit            mark every file unchanged as of now
  status            show whether each file changed since the last commit
  info <filename>   show metadata for one file
  log [N]           list the N most recent commits (default 10)
  help              show this help
  exit              leave the shell`

// Repository is the subset of *cds.Repository the shell drives.
type Repository interface {
	Commit() *cds.Checkpoint
	Status() ([]cds.FileStatus, error)
	Info(filename string) ([]cds.Field, error)
	History(limit int) ([]*cds.Checkpoint, error)
}

type styles struct {
	title     lipgloss.Style
	changed   lipgloss.Style
	unchanged lipgloss.Style
	err       lipgloss.Style
	muted     lipgloss.Style
}

// newStyles builds the shell's styles from r. A nil renderer yields unstyled output.
func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.NewRenderer(io.Discard)
	}
	return styles{
		title:     r.NewStyle().Bold(true),
		changed:   r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		unchanged: r.NewStyle().Foreground(lipgloss.Color("2")),
		err:       r.NewStyle().Foreground(lipgloss.Color("1")),
		muted:     r.NewStyle().Faint(true),
	}
}

// Shell is the interactive command loop over a repository.
type Shell struct {
	repo   Repository
	in     LineReader
	out    io.Writer
	styles styles
}

// New creates a Shell reading commands from in and printing to out.
// renderer may be nil to disable styling.
func New(repo Repository, in LineReader, out io.Writer, renderer *lipgloss.Renderer) *Shell {
	return &Shell{
		repo:   repo,
		in:     in,
		out:    out,
		styles: newStyles(renderer),
	}
}

// Run prints the banner and executes commands until "exit" or end of input.
func (s *Shell) Run() error {
	s.println(s.styles.title.Render("Change Detection System Initialized."))

	for {
		line, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.println("")
				s.println("Exiting the system.")
				return nil
			}
			return err
		}
		if s.Execute(line) {
			return nil
		}
	}
}

// Execute runs a single command line. It reports whether the shell should exit.
func (s *Shell) Execute(line string) bool {
	cmd, arg := splitCommand(strings.TrimSpace(line))

	switch cmd {
	case "":
	case "commit":
		s.commit()
	case "status":
		s.status()
	case "info":
		s.info(arg)
	case "log":
		s.log(arg)
	case "help":
		s.println(helpText)
	case "exit":
		s.println("Exiting the system.")
		return true
	default:
		s.println("Unknown command. Please try again.")
	}
	return false
}

// splitCommand separates the first word from the rest of line at any whitespace.
// Commands other than info and log take no argument.
func splitCommand(line string) (string, string) {
	name, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, rest = line[:i], strings.TrimSpace(line[i:])
	}
	switch name {
	case "info", "log":
		return name, rest
	}
	if rest != "" {
		return "?", ""
	}
	return name, ""
}

func (s *Shell) commit() {
	s.repo.Commit()
	s.println("Snapshot updated. All files are now 'unchanged'.")
}

func (s *Shell) status() {
	statuses, err := s.repo.Status()
	if err != nil {
		s.printErr(err)
		return
	}
	if len(statuses) == 0 {
		s.println(s.styles.muted.Render("No files tracked."))
		return
	}
	for _, st := range statuses {
		style := s.styles.unchanged
		if st.Status == cds.StatusChanged {
			style = s.styles.changed
		}
		s.println(fmt.Sprintf("%s: %s", st.Name, style.Render(st.Status.String())))
	}
}

func (s *Shell) info(filename string) {
	if filename == "" {
		s.println("Usage: info <filename>")
		return
	}

	fields, err := s.repo.Info(filename)
	if errors.Is(err, cds.ErrNotFound) {
		s.println(fmt.Sprintf("File '%s' not found.", filename))
		return
	}
	if err != nil {
		s.printErr(err)
		return
	}
	for _, f := range fields {
		s.println(f.String())
	}
}

func (s *Shell) log(arg string) {
	limit := DefaultLogLimit
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			s.println("Usage: log [N]")
			return
		}
		limit = n
	}

	cps, err := s.repo.History(limit)
	if err != nil {
		s.printErr(err)
		return
	}
	if len(cps) == 0 {
		s.println(s.styles.muted.Render("No commits recorded."))
		return
	}
	for _, cp := range cps {
		s.println(fmt.Sprintf("%s  %s  %d files", cp.ID, cp.CreatedAt.Format(cds.TimeLayout), len(cp.Files)))
	}
}

func (s *Shell) printErr(err error) {
	s.println(s.styles.err.Render("Error: " + err.Error()))
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}
