// Package gis loads geographic patches and the simulation reports of every patch, and turns a report field into values, colours and graphable statistics.
package gis

import (
	"errors"
	"fmt"
)

// Field names used by the simulation reports and the shapefiles.
const (
	PatchField   = "PN"                             // patch number attribute of a shape
	DateField    = "Clock.Today"                    // date column of a report
	FieldNoField = "Manager_P.Script.This_field_no" // field number column of a report
)

var (
	ErrDateMismatch     = errors.New("dates of patches do not line up")
	ErrDuplicatePatch   = errors.New("patch referenced twice")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownTransform = errors.New("unknown transformation")
	ErrUnknownStatistic = errors.New("unknown statistic")
	ErrNoPatches        = errors.New("no patches")
)

// FieldError is an error in the value of a report field.
type FieldError struct {
	Field string
	Patch int
	Row   int // -1 when the error is not about a single row
	Err   error
}

func (e *FieldError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("field %q of patch %d: %v", e.Field, e.Patch, e.Err)
	}
	return fmt.Sprintf("field %q of patch %d at row %d: %v", e.Field, e.Patch, e.Row, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
