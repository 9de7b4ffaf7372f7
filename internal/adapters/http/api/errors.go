package api

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("request validation failed")

// Parameter locations reported in validation errors.
const (
	LocPath  = "path"
	LocQuery = "query"
)

// Validation error types.
const (
	TypeIntParsing  = "int_parsing"
	TypeBoolParsing = "bool_parsing"
	TypeEnum        = "enum"
)

const (
	msgIntParsing  = "Input should be a valid integer, unable to parse string as an integer"
	msgBoolParsing = "Input should be a valid boolean, unable to interpret input"
)

// FieldError describes one parameter that failed coercion.
type FieldError struct {
	Type  string            `json:"type"`
	Loc   []string          `json:"loc"`
	Msg   string            `json:"msg"`
	Input string            `json:"input"`
	Ctx   map[string]string `json:"ctx,omitempty"`
}

// Param returns the parameter name of the error location.
func (f FieldError) Param() string {
	if len(f.Loc) == 0 {
		return ""
	}
	return f.Loc[len(f.Loc)-1]
}

// ValidationError collects every failing parameter of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = strings.Join(f.Loc, ".") + ": " + f.Msg
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type detailResponse struct {
	Detail string `json:"detail"`
}

type validationResponse struct {
	Detail []FieldError `json:"detail"`
}
