// Package describe renders the Markdown description of a review request.
//
// The description starts with the component's coordinates, lists each piece
// of licensing evidence in the order it was collected, and then adds links a
// reviewer is likely to need: a search for earlier reviews and, for known
// ecosystems, the registry page and (when it actually exists) the source
// archive.
package describe
