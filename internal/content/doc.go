// Package content defines the identity and licensing evidence of third-party
// components that are candidates for a license review.
//
// A component is identified by its ClearlyDefined-style coordinates
// (type/source/namespace/name/version). The string form of an [ID] is used as
// the title of review requests, so it doubles as the deduplication key when
// searching the tracker for an existing request.
//
// Evidence is a sealed variant: [Generic] carries a single authority's
// determination and [Aggregated] additionally lists the license strings an
// aggregating authority discovered.
package content
