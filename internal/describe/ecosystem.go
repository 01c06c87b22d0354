package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/probe"
)

// supplement appends ecosystem-specific links for a valid identity.
type supplement func(ctx context.Context, sb *strings.Builder, id content.ID, p probe.Prober)

func supplementFor(typ, source string) supplement {
	switch {
	case typ == "maven" && source == "mavencentral":
		return mavenCentral
	case typ == "npm" && source == "npmjs":
		return npmjs
	default:
		return nil
	}
}

// MavenCentralURL returns the Maven Central artifact page for id.
func MavenCentralURL(id content.ID) string {
	return fmt.Sprintf("https://search.maven.org/artifact/%s/%s/%s/jar", id.Namespace, id.Name, id.Version)
}

// MavenSourceURL returns the conventional location of the sources jar for id.
func MavenSourceURL(id content.ID) string {
	groupPath := strings.ReplaceAll(id.Namespace, ".", "/")
	return fmt.Sprintf("https://search.maven.org/remotecontent?filepath=%s/%s/%s/%s-%s-sources.jar",
		groupPath, id.Name, id.Version, id.Name, id.Version)
}

// NpmPackage returns the npm package name, including the scope if there is one.
func NpmPackage(id content.ID) string {
	if !id.HasNamespace() {
		return id.Name
	}
	return id.Namespace + "/" + id.Name
}

// NpmjsURL returns the npmjs.com page for the version of id.
func NpmjsURL(id content.ID) string {
	return fmt.Sprintf("https://www.npmjs.com/package/%s/v/%s", NpmPackage(id), id.Version)
}

func mavenCentral(ctx context.Context, sb *strings.Builder, id content.ID, p probe.Prober) {
	fmt.Fprintf(sb, "- [Maven Central](%s)\n", MavenCentralURL(id))
	if source := MavenSourceURL(id); p.Exists(ctx, source) {
		fmt.Fprintf(sb, "- [Source](%s) from Maven Central\n", source)
	}
}

func npmjs(_ context.Context, sb *strings.Builder, id content.ID, _ probe.Prober) {
	fmt.Fprintf(sb, "- [npmjs.com](%s)\n", NpmjsURL(id))
}
