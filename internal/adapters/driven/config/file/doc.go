// Package file is the driven adapter that persists tool configuration
// in a TOML file.
package file
