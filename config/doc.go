// Package config loads application settings with koanf from built-in
// defaults, an optional YAML file and MANGAREC_* environment variables.
package config
