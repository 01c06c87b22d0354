package content

// AuthorityClearlyDefined is the aggregating authority whose discovered
// licenses are listed individually.
const AuthorityClearlyDefined = "clearlydefined"

// Record holds the fields common to every kind of evidence.
type Record struct {
	Authority string `json:"authority"`
	License   string `json:"license"`
	Score     int    `json:"score"`
	// URL links to the authority's page for the component. Empty when unknown.
	URL string `json:"url,omitempty"`
}

// Evidence is one licensing data point about a component. It is implemented
// by Generic and Aggregated only.
type Evidence interface {
	Base() Record
	isEvidence()
}

// Generic is a determination made by a single authority.
type Generic struct {
	Record
}

// Base returns the common evidence fields.
func (g Generic) Base() Record { return g.Record }

func (Generic) isEvidence() {}

// Aggregated is a determination from an authority that combines the results
// of several scanners. Discovered lists the individual license strings in the
// order the authority reported them.
type Aggregated struct {
	Record
	Discovered []string `json:"discovered,omitempty"`
}

// Base returns the common evidence fields.
func (a Aggregated) Base() Record { return a.Record }

func (Aggregated) isEvidence() {}
