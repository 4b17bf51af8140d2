package recipe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		fields []FieldError
	}{
		{
			name: "complete",
			form: Form{ParticipantName: "Ada", RecipeName: "Lemon tart", Details: "Bake at 180C"},
		},
		{
			name: "empty",
			form: Form{},
			fields: []FieldError{
				{Field: FieldParticipantName, Rule: "required"},
				{Field: FieldRecipeName, Rule: "required"},
				{Field: FieldDetails, Rule: "required"},
			},
		},
		{
			name: "recipe name too long",
			form: Form{ParticipantName: "Ada", RecipeName: strings.Repeat("x", 201), Details: "ok"},
			fields: []FieldError{
				{Field: FieldRecipeName, Rule: "max"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var formErr *FormError
			require.ErrorAs(t, err, &formErr)
			assert.Equal(t, tt.fields, formErr.Fields)
		})
	}
}

func TestFormErrorMessage(t *testing.T) {
	err := &FormError{Fields: []FieldError{{Field: FieldRecipeName, Rule: "required"}}}
	assert.Equal(t, "invalid recipe form: recipeName (required)", err.Error())
}

func TestSubmissionLifecycle(t *testing.T) {
	var logs bytes.Buffer
	s := NewSubmission(zerolog.New(&logs))

	require.NoError(t, s.Set(FieldParticipantName, "Ada"))
	require.NoError(t, s.Set(FieldRecipeName, "Lemon tart"))
	require.NoError(t, s.Set(FieldDetails, "Bake at 180C"))
	assert.False(t, s.Submitted())

	require.NoError(t, s.Submit())
	assert.True(t, s.Submitted())
	assert.Contains(t, logs.String(), `"recipe":"Lemon tart"`)
	assert.Contains(t, logs.String(), `"component":"recipe"`)

	assert.ErrorIs(t, s.Submit(), ErrAlreadySubmitted)
	assert.ErrorIs(t, s.Set(FieldRecipeName, "Pie"), ErrAlreadySubmitted)

	s.Reset()
	assert.False(t, s.Submitted())
	assert.Equal(t, Form{}, s.Form())
}

func TestSubmissionRejectsIncompleteForm(t *testing.T) {
	s := NewSubmission(zerolog.Nop())
	require.NoError(t, s.Set(FieldParticipantName, "Ada"))

	var formErr *FormError
	require.ErrorAs(t, s.Submit(), &formErr)
	assert.Len(t, formErr.Fields, 2)
	assert.False(t, s.Submitted())
	assert.Equal(t, "Ada", s.Form().ParticipantName, "a failed submit keeps the entered data")
}

func TestSubmissionSetUnknownField(t *testing.T) {
	s := NewSubmission(zerolog.Nop())
	assert.ErrorIs(t, s.Set("name", "Ada"), ErrUnknownField)
	assert.ErrorIs(t, s.Set("address", "Bake at 180C"), ErrUnknownField)
	assert.Equal(t, Form{}, s.Form())
}
