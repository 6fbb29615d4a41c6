package validator

import (
	"fmt"
	"strings"

	"github.com/ppiankov/fbreport/internal/models"
)

// ValidationError lists every referential problem found in a bug report
type ValidationError struct {
	Source string
	Errors []string
}

func (e *ValidationError) Error() string {
	name := "bug"
	if e.Source != "" {
		name = e.Source
	}
	return fmt.Sprintf("Invalid %s report:\n  - %s", name, strings.Join(e.Errors, "\n  - "))
}

// Validator checks the cross references of a loaded bug collection
type Validator struct{}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}

// Validate checks that every instance resolves its category and bug
// pattern, that the pattern belongs to the same category, and that the
// instance has exactly one primary class. Patterns must also name a
// declared category. It returns nil or a *ValidationError.
func (v *Validator) Validate(bc *models.BugCollection) error {
	var errors []string

	categories := make(map[string]bool, len(bc.Categories))
	for _, c := range bc.Categories {
		if categories[c.Code] {
			errors = append(errors, fmt.Sprintf("Category '%s' is declared more than once", c.Code))
		}
		categories[c.Code] = true
	}

	patterns := make(map[string]models.BugPattern, len(bc.Patterns))
	for _, p := range bc.Patterns {
		if _, dup := patterns[p.Type]; dup {
			errors = append(errors, fmt.Sprintf("Bug pattern '%s' is declared more than once", p.Type))
			continue
		}
		patterns[p.Type] = p
		if !categories[p.Category] {
			errors = append(errors, fmt.Sprintf("Bug pattern '%s' references unknown category '%s'", p.Type, p.Category))
		}
	}

	for i, b := range bc.Instances {
		where := fmt.Sprintf("Bug instance #%d (%s)", i+1, b.Type)

		if !categories[b.Category] {
			errors = append(errors, fmt.Sprintf("%s references unknown category '%s'", where, b.Category))
		}

		p, ok := patterns[b.Type]
		switch {
		case !ok:
			errors = append(errors, fmt.Sprintf("%s references unknown bug pattern '%s'", where, b.Type))
		case p.Category != b.Category:
			errors = append(errors, fmt.Sprintf("%s has category '%s' but its pattern belongs to '%s'", where, b.Category, p.Category))
		}

		if n := b.PrimaryCount(); n != 1 {
			errors = append(errors, fmt.Sprintf("%s has %d primary classes, want exactly 1", where, n))
		}
	}

	if len(errors) > 0 {
		return &ValidationError{Errors: errors}
	}

	return nil
}
