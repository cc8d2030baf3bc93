package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fashion-digest/internal/models"
	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New()

// CommentForm is the submitted comment form
type CommentForm struct {
	Comment   string `form:"comment"`
	CSRFToken string `form:"csrf_token"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a comment form. Text holds the
// sanitized comment and is only meaningful when Valid is true.
type Result struct {
	Valid  bool
	Text   string
	Errors []ValidationError
}

// FieldErrors returns the messages recorded for one field
func (r Result) FieldErrors(field string) []string {
	var msgs []string
	for _, e := range r.Errors {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// sanitizedComment is what actually gets stored
type sanitizedComment struct {
	Text string `validate:"required,max=1000"`
}

const (
	msgRequired = "This field is required."
)

// ValidateComment sanitizes the submitted rich text and checks that it is
// non-empty and fits the comment column. It has no side effects.
func ValidateComment(form CommentForm) Result {
	clean := Sanitize(form.Comment)

	if strings.TrimFunc(TextContent(clean), unicode.IsSpace) == "" {
		return invalid(ValidationError{Field: "comment", Message: msgRequired})
	}

	err := validate.Struct(sanitizedComment{Text: clean})
	if err == nil {
		return Result{Valid: true, Text: clean}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalid(ValidationError{Field: "comment", Message: err.Error()})
	}

	result := Result{}
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, ValidationError{Field: "comment", Message: messageFor(fe)})
	}
	return result
}

func invalid(errs ...ValidationError) Result {
	return Result{Errors: errs}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Comment must be at most %d characters.", models.MaxCommentLength)
	default:
		return fmt.Sprintf("Comment failed %q validation.", fe.Tag())
	}
}

// TextContent returns the visible text of an HTML fragment
func TextContent(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return doc.Text()
}
