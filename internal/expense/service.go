package expense

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	errors "github.com/hanifn/expense-log/internal"
	"github.com/hanifn/expense-log/internal/core/common/format"
	"github.com/hanifn/expense-log/internal/core/common/validation"
	expenseDatamodel "github.com/hanifn/expense-log/internal/core/datamodel/expense"
)

// Repository defines the data access methods for expenses.
type Repository interface {
	GetAll() ([]*expenseDatamodel.Expense, error)
	GetByID(id string) (*expenseDatamodel.Expense, error)
	GetByDateRange(start, end string) ([]*expenseDatamodel.Expense, error)
	GetByCategory(category string) ([]*expenseDatamodel.Expense, error)
	Create(expense *expenseDatamodel.Expense) error
	Update(expense *expenseDatamodel.Expense) error
	Delete(id string) error
	TotalAmount() (float64, error)
	MonthlyAverage() (float64, error)
}

// Service owns the in-memory expense list and its derived statistics. Every
// mutation reloads the whole list rather than patching the cache; the unit of
// consistency is the full list.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu     sync.RWMutex
	cached []*Expense
	stats  Stats
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Refresh reloads the cached list (date descending) and recomputes the
// aggregate statistics.
func (s *Service) Refresh() error {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to fetch expenses", "error", err)
		return errors.NewInternalError("Failed to fetch expenses", err)
	}

	total, err := s.repo.TotalAmount()
	if err != nil {
		s.logger.Error("failed to fetch total amount", "error", err)
		return errors.NewInternalError("Failed to fetch total amount", err)
	}

	monthly, err := s.repo.MonthlyAverage()
	if err != nil {
		s.logger.Error("failed to fetch monthly average", "error", err)
		return errors.NewInternalError("Failed to fetch monthly average", err)
	}

	yearStart := validation.Today()[:4] + "-01-01"
	var ytd float64
	for _, r := range records {
		if r.Date >= yearStart {
			ytd += r.Amount
		}
	}

	s.mu.Lock()
	s.cached = FromDataModelSlice(records)
	s.stats = Stats{
		TotalAmount:      total,
		YearToDateTotal:  ytd,
		TransactionCount: len(records),
		MonthlyAverage:   monthly,
	}
	s.mu.Unlock()
	return nil
}

// Expenses returns a copy of the cached list.
func (s *Service) Expenses() []*Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Expense, len(s.cached))
	copy(out, s.cached)
	return out
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Service) GetByID(id string) (*Expense, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch expense", "error", err, "expense_id", id)
		return nil, errors.NewInternalError("Failed to fetch expense", err)
	}
	if record == nil {
		return nil, errors.ErrExpenseNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetByDateRange(start, end string) ([]*Expense, error) {
	records, err := s.repo.GetByDateRange(start, end)
	if err != nil {
		s.logger.Error("failed to fetch expenses by date range", "error", err, "start", start, "end", end)
		return nil, errors.NewInternalError("Failed to fetch expenses by date range", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) GetByCategory(category string) ([]*Expense, error) {
	records, err := s.repo.GetByCategory(category)
	if err != nil {
		s.logger.Error("failed to fetch expenses by category", "error", err, "category", category)
		return nil, errors.NewInternalError("Failed to fetch expenses by category", err)
	}
	return FromDataModelSlice(records), nil
}

// Create validates the submission, canonicalizes the amount to two decimal
// places and stores the record. No write is issued when validation fails.
func (s *Service) Create(dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err)
		return nil, err
	}

	amount := parseNormalizedAmount(dto.Amount.String())

	var note *string
	if dto.Note != "" {
		n := dto.Note
		note = &n
	}

	record := &expenseDatamodel.Expense{
		Title:      strings.TrimSpace(dto.Title),
		Amount:     amount,
		Date:       dto.Date,
		Category:   dto.Category,
		CategoryID: dto.CategoryID,
		Note:       note,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, errors.NewInternalError("Failed to create expense", err)
	}

	s.logger.Info("expense created", "expense_id", record.ID, "amount", record.Amount, "category", record.Category)

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

// Update applies a partial edit. Two racing edits are not coordinated; the
// last write wins at the database.
func (s *Service) Update(id string, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "expense_id", id)
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch expense for update", "error", err, "expense_id", id)
		return nil, errors.NewInternalError("Failed to fetch expense", err)
	}
	if record == nil {
		return nil, errors.ErrExpenseNotFound
	}

	if dto.Title != nil {
		record.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Amount != nil {
		record.Amount = parseNormalizedAmount(dto.Amount.String())
	}
	if dto.Date != nil {
		record.Date = *dto.Date
	}
	if dto.Category != nil {
		record.Category = *dto.Category
		// a name-only change invalidates any previously linked category
		record.CategoryID = nil
	}
	if dto.CategoryID != nil {
		record.CategoryID = dto.CategoryID
	}
	if dto.Note != nil {
		if *dto.Note == "" {
			record.Note = nil
		} else {
			record.Note = dto.Note
		}
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, errors.NewInternalError("Failed to update expense", err)
	}

	s.logger.Info("expense updated", "expense_id", id)

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

func (s *Service) Delete(id string) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch expense for delete", "error", err, "expense_id", id)
		return errors.NewInternalError("Failed to fetch expense", err)
	}
	if record == nil {
		return errors.ErrExpenseNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return errors.NewInternalError("Failed to delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id)

	return s.Refresh()
}

func parseNormalizedAmount(raw string) float64 {
	normalized := format.NormalizeAmount(raw)
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return amount
}
