// Dashreview files license review requests for third-party content.
//
// It reads the output of a license classifier, and for every item that could
// not be vetted automatically it looks for an open review request in the IP
// team's issue tracker, creating one with an evidence summary when none exists.
//
// Usage:
//
//	dashreview review content.json          # find or create review requests
//	dashreview review --dry-run content.json
//	dashreview describe --render content.yaml  # preview descriptions
//	dashreview config show
//
// The exit status is the number of items that need review, capped at 100.
package main
