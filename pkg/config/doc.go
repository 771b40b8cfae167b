// Package config loads topodaily configuration from a YAML file and
// environment variables, tracking where each value came from.
package config
