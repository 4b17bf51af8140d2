package intakekit

import (
	"fmt"
	"math"
	"strings"
)

// Reason categorizes why a file was rejected
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTooLarge
	ReasonWrongType
)

// String implements fmt.Stringer
func (r Reason) String() string {
	switch r {
	case ReasonTooLarge:
		return "too_large"
	case ReasonWrongType:
		return "wrong_type"
	default:
		return "none"
	}
}

// Outcome is the result of validating a selected file. A zero Outcome is a
// rejection with no reason and should not be constructed directly; use
// Accepted or Rejected.
type Outcome struct {
	accepted bool
	reason   Reason
}

// Accepted returns the accepting outcome
func Accepted() Outcome {
	return Outcome{accepted: true}
}

// Rejected returns a rejecting outcome with the given reason
func Rejected(reason Reason) Outcome {
	return Outcome{reason: reason}
}

// IsAccepted reports whether the file passed validation
func (o Outcome) IsAccepted() bool {
	return o.accepted
}

// Reason returns why the file was rejected, or ReasonNone when it was accepted
func (o Outcome) Reason() Reason {
	if o.accepted {
		return ReasonNone
	}
	return o.reason
}

// String implements fmt.Stringer
func (o Outcome) String() string {
	if o.accepted {
		return "accepted"
	}
	return "rejected(" + o.reason.String() + ")"
}

// Err converts a rejection into an error wrapping ErrTooLarge or
// ErrWrongType. It returns nil for accepted files.
func (o Outcome) Err(file SelectedFile) error {
	switch o.Reason() {
	case ReasonTooLarge:
		return &IntakeError{Op: "validate", Name: file.Name, Err: fmt.Errorf("%w: %s", ErrTooLarge, FormatSize(file.Size))}
	case ReasonWrongType:
		return &IntakeError{Op: "validate", Name: file.Name, Err: fmt.Errorf("%w: %q", ErrWrongType, file.MIMEType)}
	}
	return nil
}

// Validate checks a file against a size ceiling and a MIME-prefix allow-list.
// Size is checked first, so an oversized file is TooLarge whatever its type.
// An empty allow-list accepts every type.
func Validate(file SelectedFile, maxSizeBytes int64, allowedMIMEPrefixes []string) Outcome {
	if file.Size > maxSizeBytes {
		return Rejected(ReasonTooLarge)
	}

	if len(allowedMIMEPrefixes) > 0 && !matchesAnyPrefix(file.MIMEType, allowedMIMEPrefixes) {
		return Rejected(ReasonWrongType)
	}

	return Accepted()
}

// Policy is a reusable validation configuration
type Policy struct {
	// MaxFileSize is the size ceiling in bytes; zero or negative disables it
	MaxFileSize int64 `yaml:"max_file_size"`

	// AllowedTypes lists accepted MIME prefixes such as "image/" or
	// "application/pdf". "image/*" is treated as "image/". Empty accepts all.
	AllowedTypes []string `yaml:"allowed_types"`
}

// ImagePolicy accepts images up to the given size
func ImagePolicy(maxFileSize int64) Policy {
	return Policy{MaxFileSize: maxFileSize, AllowedTypes: []string{"image/"}}
}

// Validate checks the file against the policy
func (p Policy) Validate(file SelectedFile) Outcome {
	limit := p.MaxFileSize
	if limit <= 0 {
		limit = math.MaxInt64
	}
	return Validate(file, limit, p.AllowedTypes)
}

// Message renders the user-facing text for a validation outcome, or an
// empty string when the file was accepted
func (p Policy) Message(o Outcome) string {
	switch o.Reason() {
	case ReasonTooLarge:
		noun := "File"
		if p.imagesOnly() {
			noun = "Image"
		}
		return fmt.Sprintf("%s too large. Maximum size is %s", noun, FormatSize(p.MaxFileSize))
	case ReasonWrongType:
		if p.imagesOnly() {
			return "Please select an image file (JPG, PNG, GIF)"
		}
		return fmt.Sprintf("Unsupported file type. Allowed types: %s", strings.Join(p.AllowedTypes, ", "))
	}
	return ""
}

func (p Policy) imagesOnly() bool {
	return len(p.AllowedTypes) == 1 && normalizePrefix(p.AllowedTypes[0]) == "image/"
}

func matchesAnyPrefix(mimeType string, prefixes []string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, prefix := range prefixes {
		p := normalizePrefix(prefix)
		if p == "" {
			// "*" and "*/*" accept everything, including an empty type
			return true
		}
		if strings.HasPrefix(mimeType, p) {
			return true
		}
	}
	return false
}

func normalizePrefix(prefix string) string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	switch {
	case p == "*" || p == "*/*":
		return ""
	case strings.HasSuffix(p, "/*"):
		return strings.TrimSuffix(p, "*")
	}
	return p
}
