package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/briandowns/spinner"
	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"

	"github.com/dshills/dashreview/internal/content"
)

// errInterrupted is returned when the user aborts a prompt.
var errInterrupted = errors.New("interrupted by user")

// Console handles user-facing progress and prompts on stderr, separate from
// the report on stdout.
type Console struct {
	w       io.Writer
	spinner *spinner.Spinner
	color   bool
	tty     bool

	mu sync.Mutex
}

// NewConsole creates a Console writing to w. The spinner only runs when w is
// a terminal.
func NewConsole(w io.Writer) *Console {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Prefix = "Processing "

	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}
	if tty {
		_ = s.Color("cyan")
	}
	return &Console{w: w, spinner: s, color: tty && os.Getenv("NO_COLOR") == "", tty: tty}
}

// StartSpinner shows message next to the spinner.
func (c *Console) StartSpinner(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tty {
		return
	}
	c.spinner.Suffix = " " + message
	c.spinner.Start()
}

// StopSpinner stops the spinner if it is running.
func (c *Console) StopSpinner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spinner.Active() {
		c.spinner.Stop()
	}
}

// ConfirmCreate asks whether to file a review request for subject. When
// stdin is not a terminal the default answer, no, is returned without
// prompting.
func (c *Console) ConfirmCreate(subject content.Subject) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, nil
	}

	c.StopSpinner()
	defer c.StartSpinner("Processing review requests")

	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Create a review request for %s?", subject.ID),
		Default: false,
		Help:    "No open review request matches this content. Answering yes files one in the tracker.",
	}
	opts := []survey.AskOpt{
		survey.WithStdio(os.Stdin, os.Stderr, os.Stderr),
		survey.WithIcons(func(icons *survey.IconSet) {
			if c.color {
				icons.Question.Format = "cyan+b"
				icons.Help.Format = "blue"
			}
		}),
	}

	var ok bool
	err := survey.AskOne(prompt, &ok, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		c.println(c.red("\n✖ Operation cancelled"))
		return false, errInterrupted
	}
	return ok, err
}

func (c *Console) red(s string) string {
	if !c.color {
		return s
	}
	return aurora.Red(s).String()
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.w, s)
}
