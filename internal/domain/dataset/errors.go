package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
)

var (
	// ErrEmptyInput is returned when a stage receives an absent or zero-row table.
	ErrEmptyInput = errors.New("dataset is empty or absent")

	// ErrMissingColumn is the sentinel matched by every *MissingColumnError.
	ErrMissingColumn = errors.New("required column is missing")

	// ErrNonFinite is returned when a numeric column carries NaN or Inf where a
	// finite value is required. Null handling belongs to the cleaning step.
	ErrNonFinite = errors.New("column contains non-finite values")
)

// MissingColumnError reports a stage invoked before its upstream columns exist.
type MissingColumnError struct {
	Stage  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing", e.Stage, e.Column)
}

// Is lets errors.Is(err, ErrMissingColumn) match any MissingColumnError.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// CheckNotEmpty fails with ErrEmptyInput for an absent or zero-row table.
func CheckNotEmpty(df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("invalid dataset: %w", df.Err)
	}
	if df.Ncol() == 0 || df.Nrow() == 0 {
		return ErrEmptyInput
	}
	return nil
}

// RequireColumns returns a *MissingColumnError for the first absent column.
func RequireColumns(df dataframe.DataFrame, stage string, columns ...string) error {
	names := df.Names()
	for _, col := range columns {
		if !slices.Contains(names, col) {
			return &MissingColumnError{Stage: stage, Column: col}
		}
	}
	return nil
}

// HasColumn reports whether the table carries the named column.
func HasColumn(df dataframe.DataFrame, column string) bool {
	return slices.Contains(df.Names(), column)
}
