package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/describe"
)

var flagRender bool

// writeDescriptions writes the title and description of every subject that
// needs review, separated by horizontal rules.
func writeDescriptions(ctx context.Context, w io.Writer, b *describe.Builder, subjects []content.Subject) error {
	flagged := content.NeedsReview(subjects)
	if len(flagged) == 0 {
		_, err := fmt.Fprintln(w, "No content needs review.")
		return err
	}
	for i, s := range flagged {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\n---\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n\n%s", s.ID, b.Build(ctx, s)); err != nil {
			return err
		}
	}
	return nil
}

// renderMarkdown renders md for the terminal, wrapping at its width.
func renderMarkdown(md string) (string, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w - 4
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	return r.Render(md)
}

var describeCmd = &cobra.Command{
	Use:   "describe <file|->",
	Short: "Print the review request descriptions without contacting the tracker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		subjects, err := content.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		builder, err := newBuilder(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		var sb strings.Builder
		if err := writeDescriptions(cmd.Context(), &sb, builder, subjects); err != nil {
			return err
		}

		out := sb.String()
		if flagRender && isatty.IsTerminal(os.Stdout.Fd()) {
			rendered, err := renderMarkdown(out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			} else {
				out = rendered
			}
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	addTrackerFlags(describeCmd)
	describeCmd.Flags().BoolVar(&flagRender, "render", false, "Render Markdown for the terminal")
}
