// Package config provides the workload configuration for pvec.
//
// Settings come from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (PVEC_*)    │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file             │  ← bench.toml or bench.yaml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied on top by the caller, followed by another
// call to Validate.
//
// # File Format
//
//	seed = 42
//	ops = 100000
//	initial = 5000
//	check_every = 1000
//	include = ["weights.toml"]
//
//	[weights]
//	add_first = 4
//	concat = 2
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[script]
//	timeout = "10s"
//
// YAML files use the same keys. Weights not mentioned keep their defaults.
//
// # Errors
//
// Invalid values are reported as *ValidationError (matching
// ErrValidationFailed) and wrongly typed values as *TypeError (matching
// ErrTypeMismatch). All problems found are joined into a single error.
package config
