package loader

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrReadOnly    = errors.New("file system is read only")
	ErrFrontMatter = errors.New("invalid front matter")
)

// ErrorCollector gathers the errors found in one source file.
type ErrorCollector struct {
	Errors []error

	// Errors beyond this many are dropped.  0 means no limit.
	MaxErrors int
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.Errors) > 0
}

func (c *ErrorCollector) AddErrors(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if c.MaxErrors > 0 && len(c.Errors) >= c.MaxErrors {
			return
		}
		c.Errors = append(c.Errors, err)
	}
}

// PrintErrors writes one error per line, prefixed with path.
func (c *ErrorCollector) PrintErrors(w io.Writer, path string) {
	for _, err := range c.Errors {
		fmt.Fprintf(w, "%s: %v\n", path, err)
	}
}
