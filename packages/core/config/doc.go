// Package config handles presentation configuration loading for testglow.
//
// It provides functionality for:
//   - Loading configuration from .testglow.yml or testglow.yml files
//   - Color mode resolution (auto/always/never) against the terminal
//   - Tag color overrides by built-in name or hex literal
package config
