// Package config loads the optional YAML configuration file for the
// calendar agent and supplies defaults for everything left unset.
package config
