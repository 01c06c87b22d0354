// Package probe checks whether a downloadable artifact exists before a link
// to it is shown to a reviewer.
//
// Probes never fail: any problem (malformed URL, network error, timeout,
// non-2xx status) is reported as "not available". A missing link is harmless;
// a broken one is not.
package probe
