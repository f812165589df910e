// Package config loads and merges qprimes configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (QPRIMES_BOUND, QPRIMES_FORMAT, QPRIMES_LOG_LEVEL,
//     QPRIMES_LOG_FORMAT, QPRIMES_CACHE)
//  3. Config file ($XDG_CONFIG_HOME/qprimes/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged and validated [Config], [Save] to write a
// config file, and [SetField] to update a single key.
package config
