// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package validation

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/moodboard/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// DefaultMaxImageBytes is the decoded size limit for one uploaded image.
const DefaultMaxImageBytes = 5 * 1024 * 1024

var maxImageBytes atomic.Int64

func init() {
	maxImageBytes.Store(DefaultMaxImageBytes)
}

// SetMaxImageBytes changes the decoded size limit applied by imagedatauri.
func SetMaxImageBytes(n int64) {
	if n > 0 {
		maxImageBytes.Store(n)
	}
}

// ValidationError represents a single field validation error with structured information.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the JSON name of the field that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "50" for "max=50").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() any {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError represents a collection of validation errors.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (ve *RequestValidationError) add(field, tag, param string, value any, message string) {
	ve.errors = append(ve.errors, ValidationError{
		field:   field,
		tag:     tag,
		param:   param,
		value:   value,
		message: message,
	})
}

// ToAPIError converts validation errors to the API error envelope.
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	if len(ve.errors) == 0 {
		return &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: "Validation failed",
		}
	}

	// Single error - use simple message
	if len(ve.errors) == 1 {
		err := ve.errors[0]
		details := map[string]any{
			"field": err.field,
			"tag":   err.tag,
		}
		if s, ok := err.value.(string); !ok || len(s) <= 100 {
			details["value"] = err.value
		}
		return &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: err.message,
			Details: details,
		}
	}

	// Multiple errors - list all fields
	fields := make([]map[string]any, len(ve.errors))
	messages := make([]string, 0, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]any{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		messages = append(messages, err.message)
	}

	return &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: strings.Join(messages, "; "),
		Details: map[string]any{
			"fields": fields,
		},
	}
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names so messages match the request body.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		mustRegister("imagedatauri", validateImageDataURI)
		mustRegister("budget", validateBudget)
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

var dataURIPattern = regexp.MustCompile(`^data:([^;,]+);base64,(.+)$`)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// checkImageDataURI returns a message describing what is wrong with uri,
// or "" when it is a supported base64 image within the size limit.
func checkImageDataURI(uri string) string {
	m := dataURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "must be a valid base64 data URI"
	}
	if !supportedImageTypes[strings.ToLower(m[1])] {
		return fmt.Sprintf("unsupported type %s. Use JPEG, PNG, or WEBP", m[1])
	}
	limit := maxImageBytes.Load()
	if int64(base64.StdEncoding.DecodedLen(len(m[2]))) > limit+2 {
		return fmt.Sprintf("exceeds %dMB limit", limit/(1024*1024))
	}
	decoded, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "invalid base64 encoding"
	}
	if int64(len(decoded)) > limit {
		return fmt.Sprintf("exceeds %dMB limit", limit/(1024*1024))
	}
	return ""
}

func validateImageDataURI(fl validator.FieldLevel) bool {
	return checkImageDataURI(fl.Field().String()) == ""
}

func validateBudget(fl validator.FieldLevel) bool {
	_, err := models.ParseBudget(fl.Field().String())
	return err == nil
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError if validation fails.
func ValidateStruct(s any) *RequestValidationError {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	// Convert validator errors to our RequestValidationError type using errors.As
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Unexpected error type - wrap it
		return &RequestValidationError{
			errors: []ValidationError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// Limits are the configurable moodcheck request bounds.
type Limits struct {
	MaxImages       int
	MaxPromptLength int // in characters
}

// ErrNothingToAnalyze is the message for a request with neither images nor prompt.
const ErrNothingToAnalyze = "provide images and/or describe the look you want"

// ValidateMoodcheck checks a moodcheck request against its struct tags and
// the configured limits.
func ValidateMoodcheck(req *models.MoodcheckRequest, limits Limits) *RequestValidationError {
	ve := ValidateStruct(req)
	if ve == nil {
		ve = &RequestValidationError{}
	}

	if len(req.Images) == 0 && strings.TrimSpace(req.Prompt) == "" {
		ve.add("images", "required_without", "prompt", nil, ErrNothingToAnalyze)
	}
	if limits.MaxImages > 0 && len(req.Images) > limits.MaxImages {
		ve.add("images", "max", fmt.Sprint(limits.MaxImages), len(req.Images),
			fmt.Sprintf("Maximum %d images allowed", limits.MaxImages))
	}
	if limits.MaxPromptLength > 0 && utf8.RuneCountInString(req.Prompt) > limits.MaxPromptLength {
		ve.add("prompt", "max", fmt.Sprint(limits.MaxPromptLength), nil,
			fmt.Sprintf("Prompt must be %d characters or less", limits.MaxPromptLength))
	}

	if len(ve.errors) == 0 {
		return nil
	}
	return ve
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"budget":   "%s must be one of: affordable, mid-range, luxury",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if tag == "imagedatauri" {
		s, _ := fe.Value().(string)
		return fmt.Sprintf("%s: %s", imageLabel(fe), checkImageDataURI(s))
	}

	// Check simple templates (no param)
	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}

	// Check templates with param
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	// Handle min/max with type-specific messages
	return translateMinMax(fe, field, tag, param)
}

// imageLabel turns "images[2]" into "Image 3".
func imageLabel(fe validator.FieldError) string {
	var idx int
	if _, err := fmt.Sscanf(fe.Field(), "images[%d]", &idx); err != nil {
		return fe.Field()
	}
	return fmt.Sprintf("Image %d", idx+1)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind().String() == "string"

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
