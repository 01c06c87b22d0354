package content

import (
	"fmt"
	"regexp"
	"strings"
)

// NoNamespace is the namespace placeholder for components without one
// (for example unscoped npm packages).
const NoNamespace = "-"

var coordinateRe = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*$`)

// ID identifies a component by its coordinates.
type ID struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Version   string `json:"version"`
}

// String returns the canonical type/source/namespace/name/version form.
// Existing review requests are matched against this exact string, so the
// format must not change.
func (id ID) String() string {
	return strings.Join([]string{id.Type, id.Source, id.Namespace, id.Name, id.Version}, "/")
}

// IsValid reports whether the identity is complete and well formed. Invalid
// identities must not be used to construct links.
func (id ID) IsValid() bool {
	if !coordinateRe.MatchString(id.Type) || !coordinateRe.MatchString(id.Source) {
		return false
	}
	for _, part := range []string{id.Namespace, id.Name, id.Version} {
		if part == "" || strings.ContainsAny(part, "/ \t\r\n") {
			return false
		}
	}
	return id.Version != NoNamespace
}

// HasNamespace reports whether the namespace is set to something other than
// the placeholder.
func (id ID) HasNamespace() bool {
	return id.Namespace != "" && id.Namespace != NoNamespace
}

// ParseID parses a type/source/namespace/name/version string. It only checks
// the shape; use IsValid to check the parts.
func ParseID(s string) (ID, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 5 {
		return ID{}, fmt.Errorf("invalid content id %q: want type/source/namespace/name/version", s)
	}
	return ID{
		Type:      parts[0],
		Source:    parts[1],
		Namespace: parts[2],
		Name:      parts[3],
		Version:   parts[4],
	}, nil
}
