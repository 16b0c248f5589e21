package validation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrEmptyName = errors.New("'name' is required")

// CheckName rejects empty names and names with surrounding whitespace
func CheckName(name string) error {
	if len(name) == 0 {
		return ErrEmptyName
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("name %q has leading or trailing whitespace", name)
	}
	return nil
}

type ConfigError interface {
	error
	PrependPath(path string) ConfigError
}

type ValidationError struct {
	Path     string
	Problems map[string]string
}

func NewValidationError(problems map[string]string, path ...string) *ValidationError {
	return &ValidationError{strings.Join(path, "."), problems}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Problems))
	for field := range e.Problems {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	fmt.Fprintf(&b, "validation errors found in '%s':\n", e.Path)
	for _, field := range fields {
		fmt.Fprintf(&b, "  %s: %s\n", field, e.Problems[field])
	}
	return b.String()
}

func (e *ValidationError) Is(other error) bool {
	_, ok := other.(*ValidationError)
	return ok
}

func (e *ValidationError) PrependPath(path string) ConfigError {
	if e.Path == "" {
		e.Path = path
		return e
	}
	e.Path = fmt.Sprint(path, ".", e.Path)
	return e
}

type Validator interface {
	// Returns a map of field and human readable explanation of what's wrong
	Valid(ctx context.Context) (problems map[string]string)
}

// Validate runs v and wraps its problems, if any, into a ValidationError at path
func Validate(ctx context.Context, v Validator, path ...string) error {
	if problems := v.Valid(ctx); len(problems) > 0 {
		return NewValidationError(problems, path...)
	}
	return nil
}

type DuplicateFoundError struct {
	Path string
}

func NewDuplicateFoundError(path ...string) *DuplicateFoundError {
	return &DuplicateFoundError{strings.Join(path, ".")}
}

func (e *DuplicateFoundError) Error() string {
	return fmt.Sprintf("duplicate entity in '%s'", e.Path)
}

func (e *DuplicateFoundError) PrependPath(path string) ConfigError {
	e.Path = fmt.Sprint(path, ".", e.Path)
	return e
}
