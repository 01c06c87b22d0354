// Package tracker talks to the issue tracker that holds license review
// requests.
//
// Two backends are provided. The GitLab backend is a small REST client over
// net/http and is the default, since the Eclipse IP team tracks reviews in a
// GitLab project. The GitHub backend uses go-github. Both satisfy Client, and
// callers obtain one for the duration of a batch with Use, which releases the
// client on every exit path.
//
// Failures to reach the tracker, or non-2xx answers from it, are reported as
// *TransportError so callers can tell them apart from programming errors.
// Error text never carries the configured token.
package tracker
