package registry

import (
	"errors"
	"fmt"
)

// Registry errors
var (
	ErrPreloadRequired = errors.New("styles must be preloaded before apply")
	ErrStyleNotFound   = errors.New("style not found")
	ErrFileNotFound    = errors.New("style file not found")
)

// StyleNotFoundError reports an Apply for a name the current snapshot lacks.
type StyleNotFoundError struct {
	Name string
}

func (e *StyleNotFoundError) Error() string {
	return fmt.Sprintf("style %q not found", e.Name)
}

func (e *StyleNotFoundError) Is(target error) bool {
	return target == ErrStyleNotFound
}

// FileNotFoundError reports a missing schema resource. Location is the directory
// or filesystem the name was resolved against.
type FileNotFoundError struct {
	Name     string
	Location string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("style file %q not found in %s", e.Name, e.Location)
}

func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}
