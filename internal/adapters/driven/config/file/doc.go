// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps the user's settings in ~/.immigraid/config.toml.
package file
