package versions

import "fmt"

// ValidationError is a requested version that is not known to the repository.
type ValidationError struct {
	Version string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("version %q not found", e.Version)
}
