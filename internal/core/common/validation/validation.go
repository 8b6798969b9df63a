// Package validation implements the per-field expense and category input
// validators. Each field check is pure and synchronous; a failing field stops
// at its first error, and Validate aggregates the results into a field →
// message structure carried by the error details.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	errors "github.com/hanifn/expense-log/internal"
)

// ReferenceZone is the fixed time zone used to compute "today" for date-bound
// validation, so the result does not depend on server locale.
const ReferenceZone = "America/Phoenix"

const (
	TitleMinLength = 2
	TitleMaxLength = 100

	NameMinLength = 2
	NameMaxLength = 50

	AmountMax     = 999999.99
	AmountMaxFrac = 2

	DateMin = "1900-01-01"
)

type ValidatorFunc func(string) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      string
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name, value string) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.AppError {
		if strings.TrimSpace(value) == "" {
			return errors.NewValidationFieldError(fv.FieldName,
				fmt.Sprintf("%s is required", fieldLabel(fv.FieldName)), errors.ErrCodeRequired)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.AppError {
		if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
			return errors.NewValidationFieldError(fv.FieldName,
				fmt.Sprintf("%s must be at least %d characters", fieldLabel(fv.FieldName), min),
				errors.ErrCodeTooShort)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.AppError {
		if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
			return errors.NewValidationFieldError(fv.FieldName,
				fmt.Sprintf("%s must be less than %d characters", fieldLabel(fv.FieldName), max),
				errors.ErrCodeTooLong)
		}
		return nil
	})
	return fv
}

// Amount chains the full amount rule set: parseable, non-negative, at most
// two fraction digits in the raw string, and within the allowed range.
func (fv *FieldValidator) Amount() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.AppError {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return errors.NewValidationFieldError(fv.FieldName,
				"Please enter a valid number", errors.ErrCodeNotANumber)
		}
		if parsed < 0 {
			return errors.NewValidationFieldError(fv.FieldName,
				"Amount cannot be negative", errors.ErrCodeNegative)
		}
		if dot := strings.IndexByte(value, '.'); dot >= 0 {
			if len(strings.TrimSpace(value[dot+1:])) > AmountMaxFrac {
				return errors.NewValidationFieldError(fv.FieldName,
					fmt.Sprintf("Amount can have maximum %d decimal places", AmountMaxFrac),
					errors.ErrCodeTooPrecise)
			}
		}
		if parsed > AmountMax {
			return errors.NewValidationFieldError(fv.FieldName,
				"Amount cannot exceed $999,999.99", errors.ErrCodeTooLarge)
		}
		return nil
	})
	return fv
}

// DateBounds rejects dates after today (in the reference zone) or before
// DateMin. Comparison is lexicographic on the zero-padded ISO form.
func (fv *FieldValidator) DateBounds(today string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.AppError {
		if value > today {
			return errors.NewValidationFieldError(fv.FieldName,
				"Date cannot be in the future", errors.ErrCodeFutureDate)
		}
		if value < DateMin {
			return errors.NewValidationFieldError(fv.FieldName,
				"Date cannot be before 1900", errors.ErrCodeTooOld)
		}
		return nil
	})
	return fv
}

// HexColor requires a "#RRGGBB" value.
func (fv *FieldValidator) HexColor() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.AppError {
		if !isHexColor(value) {
			return errors.NewValidationFieldError(fv.FieldName,
				"Color must be a hex value like #336699", errors.ErrCodeInvalidColor)
		}
		return nil
	})
	return fv
}

// Validate runs every field's chain, stopping at the first failure per field,
// and aggregates failures into a single validation error.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			err := validator(field.Value)
			if err == nil {
				continue
			}
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: err.Message,
					Code:    string(err.Code),
				})
			}
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// Today returns the current date in the reference zone as "YYYY-MM-DD".
func Today() string {
	loc, err := time.LoadLocation(ReferenceZone)
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006-01-02")
}

func ValidateTitle(title string) *errors.AppError {
	v := NewValidator()
	v.Field("title", title).
		Required().
		MinLength(TitleMinLength).
		MaxLength(TitleMaxLength)
	return v.Validate()
}

// ValidateAmount checks the raw amount string as submitted, before
// normalization.
func ValidateAmount(raw string) *errors.AppError {
	v := NewValidator()
	v.Field("amount", raw).
		Required().
		Amount()
	return v.Validate()
}

func ValidateDate(date string) *errors.AppError {
	return ValidateDateAt(date, Today())
}

// ValidateDateAt is ValidateDate with an explicit "today", for deterministic
// tests.
func ValidateDateAt(date, today string) *errors.AppError {
	v := NewValidator()
	v.Field("date", date).
		Required().
		DateBounds(today)
	return v.Validate()
}

func ValidateCategory(category string) *errors.AppError {
	v := NewValidator()
	v.Field("category", category).Required()
	return v.Validate()
}

func ValidateCategoryName(name string) *errors.AppError {
	v := NewValidator()
	v.Field("name", name).
		Required().
		MinLength(NameMinLength).
		MaxLength(NameMaxLength)
	return v.Validate()
}

func ValidateCategoryColor(color string) *errors.AppError {
	v := NewValidator()
	v.Field("color", color).
		Required().
		HexColor()
	return v.Validate()
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func fieldLabel(field string) string {
	switch field {
	case "title":
		return "Title"
	case "amount":
		return "Amount"
	case "date":
		return "Date"
	case "category":
		return "Category"
	case "name":
		return "Category name"
	case "color":
		return "Color"
	}
	return field
}
