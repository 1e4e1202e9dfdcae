package mods

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMod is returned when registering a mod for a pair without a provider.
	ErrUnknownMod = errors.New("unknown mod")

	// ErrConcurrentModification is returned when a file changed on disk
	// between load and commit.
	ErrConcurrentModification = errors.New("file modified during processing")

	// ErrInvalidModResults is returned when a mod leaves a value of the wrong type.
	ErrInvalidModResults = errors.New("invalid mod results")
)

// ModError reports the mod and file a pipeline failure happened in.
type ModError struct {
	Platform Platform
	ModName  ModName
	Mod      string
	Path     string
	Err      error
}

func (e *ModError) Error() string {
	switch {
	case e.Mod != "" && e.Path != "":
		return fmt.Sprintf("%s.%s (%s) %s: %v", e.Platform, e.ModName, e.Mod, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s.%s %s: %v", e.Platform, e.ModName, e.Path, e.Err)
	case e.Mod != "":
		return fmt.Sprintf("%s.%s (%s): %v", e.Platform, e.ModName, e.Mod, e.Err)
	default:
		return fmt.Sprintf("%s.%s: %v", e.Platform, e.ModName, e.Err)
	}
}

func (e *ModError) Unwrap() error { return e.Err }
