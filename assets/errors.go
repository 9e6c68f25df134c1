package assets

import "fmt"

// LoadError reports a resource that could not be loaded. The caller decides
// whether to abort or substitute a fallback.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("load %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %q: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
