// Package redact removes access tokens from text before it is written to a
// report or a log.
//
// Tracker error bodies and request URLs can echo credentials back. Detection
// uses regex heuristics for the token shapes the supported trackers issue
// (GitLab personal/project/OAuth tokens, GitHub tokens), bearer and
// PRIVATE-TOKEN headers, and private_token/access_token query parameters.
// A literal token known to the caller can be scrubbed with [Token].
package redact
