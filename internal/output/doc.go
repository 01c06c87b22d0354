// Package output formats workflow reports for display or machine consumption.
//
// Three formats are supported:
//   - text: the plain report, optionally coloured for a terminal (default)
//   - markdown: a heading, an outcome summary table and one bullet per subject
//   - json: the full structured report with per-outcome counts
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*review.Report]. [WriteReport]
// handles destination selection.
package output
