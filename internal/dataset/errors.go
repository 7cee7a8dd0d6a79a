package dataset

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates no loader accepts the file format.
var ErrUnsupported = errors.New("unsupported dataset format")

// ErrEmpty indicates the input holds no header row.
var ErrEmpty = errors.New("dataset has no columns")

// ColumnError reports a column that cannot be added to a dataset.
type ColumnError struct {
	Index  int
	Name   string
	Reason string
}

func (e *ColumnError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("column %d: %s", e.Index+1, e.Reason)
	}
	return fmt.Sprintf("column %d (%s): %s", e.Index+1, e.Name, e.Reason)
}
