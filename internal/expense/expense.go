package expense

import (
	"time"

	expenseDatamodel "github.com/hanifn/expense-log/internal/core/datamodel/expense"
)

// Expense is a single recorded spending transaction.
type Expense struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	Date       string    `json:"date"`
	Category   string    `json:"category"`
	CategoryID *string   `json:"category_id,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	var note *string
	if e.Note != "" {
		n := e.Note
		note = &n
	}
	return &expenseDatamodel.Expense{
		ID:         e.ID,
		Title:      e.Title,
		Amount:     e.Amount,
		Date:       e.Date,
		Category:   e.Category,
		CategoryID: e.CategoryID,
		Note:       note,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	note := ""
	if e.Note != nil {
		note = *e.Note
	}
	return &Expense{
		ID:         e.ID,
		Title:      e.Title,
		Amount:     e.Amount,
		Date:       e.Date,
		Category:   e.Category,
		CategoryID: e.CategoryID,
		Note:       note,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
