// Package config loads and merges dashreview configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (DASH_REPOSITORY_HOST, DASH_TOKEN, DASH_REPOSITORY_PATH, etc.),
//     including those read from a .env file in the working directory
//  3. Config file ($XDG_CONFIG_HOME/dashreview/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
