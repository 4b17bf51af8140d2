// Package recipe holds the state of the recipe-submission form. A submission
// is validated, logged and kept in memory until the form is reset; nothing
// is persisted.
package recipe

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Field names accepted by Set
const (
	FieldParticipantName = "participantName"
	FieldRecipeName      = "recipeName"
	FieldDetails         = "recipeDetails"
)

var (
	ErrUnknownField     = errors.New("unknown form field")
	ErrAlreadySubmitted = errors.New("form already submitted")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form is the data a participant enters
type Form struct {
	ParticipantName string `json:"participantName" validate:"required,max=120"`
	RecipeName      string `json:"recipeName" validate:"required,max=200"`
	Details         string `json:"recipeDetails" validate:"required,max=10000"`
}

// FieldError describes a single invalid field
type FieldError struct {
	Field string
	Rule  string
}

// FormError lists every invalid field of a submission
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return "invalid recipe form: " + strings.Join(parts, ", ")
}

// Validate checks that every field is present and within bounds
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	formErr := &FormError{}
	for _, fe := range verrs {
		formErr.Fields = append(formErr.Fields, FieldError{Field: jsonName(fe.StructField()), Rule: fe.Tag()})
	}
	return formErr
}

func jsonName(structField string) string {
	switch structField {
	case "ParticipantName":
		return FieldParticipantName
	case "RecipeName":
		return FieldRecipeName
	case "Details":
		return FieldDetails
	}
	return structField
}

// Submission is the local state of one submission form
type Submission struct {
	mu        sync.Mutex
	form      Form
	submitted bool
	logger    zerolog.Logger
}

// NewSubmission creates an empty form
func NewSubmission(logger zerolog.Logger) *Submission {
	return &Submission{logger: logger.With().Str("component", "recipe").Logger()}
}

// Set updates one field by its form name
func (s *Submission) Set(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return ErrAlreadySubmitted
	}
	switch field {
	case FieldParticipantName:
		s.form.ParticipantName = value
	case FieldRecipeName:
		s.form.RecipeName = value
	case FieldDetails:
		s.form.Details = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Form returns a copy of the current form data
func (s *Submission) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Submitted reports whether the confirmation state is showing
func (s *Submission) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Submit validates the form, logs it and switches to the confirmation state
func (s *Submission) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return ErrAlreadySubmitted
	}
	if err := s.form.Validate(); err != nil {
		return err
	}

	s.submitted = true
	s.logger.Info().
		Str("participant", s.form.ParticipantName).
		Str("recipe", s.form.RecipeName).
		Int("detailsLength", len(s.form.Details)).
		Msg("Recipe submission")
	return nil
}

// Reset clears the form and leaves the confirmation state
func (s *Submission) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = Form{}
	s.submitted = false
}
