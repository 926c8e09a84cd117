// Package config provides default configuration values for layoutcore.
package config

// Default configuration constants.
const (
	defaultFontHeight = 14
)
