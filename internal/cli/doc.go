// Package cli wires together the Cobra command tree for the qprimes binary.
//
// It defines the root command and its subcommands (search, prime, config,
// cache, version), binds flags, reads configuration, runs the quadratic search
// and returns deterministic exit codes: 0 on success, 2 for invalid input and
// 4 for runtime failures such as an unwritable output file.
package cli
