package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/probe"
)

// SearchLinker builds a link to a cross-reference search for a component.
type SearchLinker interface {
	SearchURL(id content.ID) (string, bool)
}

// NoSearch never produces a search link.
type NoSearch struct{}

// SearchURL always returns false.
func (NoSearch) SearchURL(content.ID) (string, bool) { return "", false }

// Builder assembles review request descriptions.
type Builder struct {
	prober probe.Prober
	search SearchLinker
}

// New creates a Builder. A nil prober never confirms source archives and a
// nil search linker adds no search link.
func New(p probe.Prober, s SearchLinker) *Builder {
	if p == nil {
		p = probe.Never
	}
	if s == nil {
		s = NoSearch{}
	}
	return &Builder{prober: p, search: s}
}

// Build returns the Markdown description for subject.
func (b *Builder) Build(ctx context.Context, subject content.Subject) string {
	var sb strings.Builder
	id := subject.ID

	sb.WriteString(id.String())
	sb.WriteString("\n")

	for _, ev := range subject.Evidence {
		writeEvidence(&sb, ev)
	}

	// Everything below builds URLs from the coordinates.
	if !id.IsValid() {
		return sb.String()
	}

	if url, ok := b.search.SearchURL(id); ok {
		fmt.Fprintf(&sb, "- [Search previous reviews](%s)\n", url)
	}

	if supplement := supplementFor(id.Type, id.Source); supplement != nil {
		supplement(ctx, &sb, id, b.prober)
	}

	return sb.String()
}

func writeEvidence(sb *strings.Builder, ev content.Evidence) {
	rec := ev.Base()
	authority := rec.Authority
	if rec.URL != "" {
		authority = fmt.Sprintf("[%s](%s)", rec.Authority, rec.URL)
	}
	fmt.Fprintf(sb, "- %s %s (%d)\n", authority, rec.License, rec.Score)

	switch e := ev.(type) {
	case content.Aggregated:
		for _, license := range e.Discovered {
			fmt.Fprintf(sb, "  - %s\n", license)
		}
	}
}
