package expense

import (
	"encoding/json"

	errors "github.com/hanifn/expense-log/internal"
	"github.com/hanifn/expense-log/internal/core/common/validation"
)

// CreateExpenseDTO is the request payload for recording an expense. Amount
// arrives as a JSON number but validation runs on its raw textual form, so
// precision rules see exactly what was typed.
type CreateExpenseDTO struct {
	Title      string      `json:"title"`
	Amount     json.Number `json:"amount"`
	Date       string      `json:"date"`
	Category   string      `json:"category"`
	CategoryID *string     `json:"category_id,omitempty"`
	Note       string      `json:"note,omitempty"`
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	return validateFields(
		fieldCheck{"title", func() *errors.AppError { return validation.ValidateTitle(dto.Title) }},
		fieldCheck{"amount", func() *errors.AppError { return validation.ValidateAmount(dto.Amount.String()) }},
		fieldCheck{"date", func() *errors.AppError { return validation.ValidateDate(dto.Date) }},
		fieldCheck{"category", func() *errors.AppError { return validation.ValidateCategory(dto.Category) }},
	)
}

// UpdateExpenseDTO is a partial update; only non-nil fields are validated and
// applied.
type UpdateExpenseDTO struct {
	Title      *string      `json:"title,omitempty"`
	Amount     *json.Number `json:"amount,omitempty"`
	Date       *string      `json:"date,omitempty"`
	Category   *string      `json:"category,omitempty"`
	CategoryID *string      `json:"category_id,omitempty"`
	Note       *string      `json:"note,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() *errors.AppError {
	var checks []fieldCheck
	if dto.Title != nil {
		checks = append(checks, fieldCheck{"title", func() *errors.AppError { return validation.ValidateTitle(*dto.Title) }})
	}
	if dto.Amount != nil {
		checks = append(checks, fieldCheck{"amount", func() *errors.AppError { return validation.ValidateAmount(dto.Amount.String()) }})
	}
	if dto.Date != nil {
		checks = append(checks, fieldCheck{"date", func() *errors.AppError { return validation.ValidateDate(*dto.Date) }})
	}
	if dto.Category != nil {
		checks = append(checks, fieldCheck{"category", func() *errors.AppError { return validation.ValidateCategory(*dto.Category) }})
	}
	return validateFields(checks...)
}

type fieldCheck struct {
	field string
	run   func() *errors.AppError
}

// validateFields runs every check and merges per-field failures into one
// validation error, so a bad submission reports all failing fields at once.
func validateFields(checks ...fieldCheck) *errors.AppError {
	var all []errors.ValidationError
	for _, c := range checks {
		if err := c.run(); err != nil {
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				all = append(all, details.Errors...)
			} else {
				all = append(all, errors.ValidationError{
					Field:   c.field,
					Message: err.Message,
					Code:    string(err.Code),
				})
			}
		}
	}
	if len(all) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: all})
	}
	return nil
}

// ExpensesResponse carries the cached list plus the derived statistics.
type ExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
	Stats    Stats      `json:"stats"`
}

// Stats are the aggregate figures recomputed from the cached list after
// every refresh. YearToDateTotal covers the current calendar year only.
type Stats struct {
	TotalAmount      float64 `json:"total_amount"`
	YearToDateTotal  float64 `json:"year_to_date_total"`
	TransactionCount int     `json:"transaction_count"`
	MonthlyAverage   float64 `json:"monthly_average"`
}
