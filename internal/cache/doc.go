// Package cache provides a file-based cache of source-availability probe
// results.
//
// Entries are keyed by a SHA-256 hash of the probed URL and record when the
// artifact was last seen. Only positive results are stored: release artifacts
// on the hosts we probe are immutable, while a missing artifact may still be
// published later. Entries older than the configured TTL are ignored on read
// reported as expired by [Cache.Records] and removed by [Cache.Prune].
//
// The default cache directory is $XDG_CACHE_HOME/dashreview (or the
// OS-appropriate equivalent).
package cache
