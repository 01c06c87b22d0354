package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDString(t *testing.T) {
	id := ID{Type: "maven", Source: "mavencentral", Namespace: "org.example", Name: "foo", Version: "1.0.0"}
	assert.Equal(t, "maven/mavencentral/org.example/foo/1.0.0", id.String())
	assert.Equal(t, id.String(), id.String())
}

func TestIDStringDistinguishesFields(t *testing.T) {
	ids := []ID{
		{Type: "maven", Source: "mavencentral", Namespace: "org.example", Name: "foo", Version: "1.0.0"},
		{Type: "maven", Source: "mavencentral", Namespace: "org.example", Name: "foo", Version: "1.0.1"},
		{Type: "maven", Source: "mavencentral", Namespace: "org.example", Name: "bar", Version: "1.0.0"},
		{Type: "maven", Source: "mavencentral", Namespace: "org.other", Name: "foo", Version: "1.0.0"},
		{Type: "npm", Source: "npmjs", Namespace: "-", Name: "foo", Version: "1.0.0"},
		{Type: "npm", Source: "npmjs", Namespace: "@scope", Name: "foo", Version: "1.0.0"},
		{Type: "pypi", Source: "pypi", Namespace: "-", Name: "foo", Version: "1.0.0"},
	}
	seen := map[string]ID{}
	for _, id := range ids {
		s := id.String()
		if prev, ok := seen[s]; ok {
			t.Fatalf("%v and %v both render as %q", prev, id, s)
		}
		seen[s] = id
	}
}

func TestIDIsValid(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want bool
	}{
		{"maven", ID{"maven", "mavencentral", "org.example", "foo", "1.0.0"}, true},
		{"npm unscoped", ID{"npm", "npmjs", "-", "leftpad", "2.0.0"}, true},
		{"npm scoped", ID{"npm", "npmjs", "@babel", "core", "7.0.0"}, true},
		{"empty type", ID{"", "mavencentral", "org.example", "foo", "1.0.0"}, false},
		{"uppercase type", ID{"Maven", "mavencentral", "org.example", "foo", "1.0.0"}, false},
		{"empty source", ID{"maven", "", "org.example", "foo", "1.0.0"}, false},
		{"empty namespace", ID{"maven", "mavencentral", "", "foo", "1.0.0"}, false},
		{"empty name", ID{"maven", "mavencentral", "org.example", "", "1.0.0"}, false},
		{"empty version", ID{"maven", "mavencentral", "org.example", "foo", ""}, false},
		{"placeholder version", ID{"maven", "mavencentral", "org.example", "foo", "-"}, false},
		{"slash in name", ID{"maven", "mavencentral", "org.example", "foo/bar", "1.0.0"}, false},
		{"space in version", ID{"maven", "mavencentral", "org.example", "foo", "1.0 beta"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.IsValid())
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("npm/npmjs/-/leftpad/2.0.0")
	require.NoError(t, err)
	assert.Equal(t, ID{Type: "npm", Source: "npmjs", Namespace: "-", Name: "leftpad", Version: "2.0.0"}, id)
	assert.False(t, id.HasNamespace())
	assert.Equal(t, "npm/npmjs/-/leftpad/2.0.0", id.String())

	_, err = ParseID("npm/npmjs/leftpad/2.0.0")
	assert.Error(t, err)

	_, err = ParseID("")
	assert.Error(t, err)
}

func TestParseIDDoesNotValidateParts(t *testing.T) {
	id, err := ParseID("maven/mavencentral/org.example/foo/")
	require.NoError(t, err)
	assert.False(t, id.IsValid())
}
