package spring

import "errors"

var (
	// ErrPresetNotFound is returned by NewWithPreset for unknown preset names.
	ErrPresetNotFound = errors.New("spring: preset not found")
)
