package postgres

import (
	"errors"

	"github.com/google/uuid"
	expenseDatamodel "github.com/hanifn/expense-log/internal/core/datamodel/expense"
	"github.com/hanifn/expense-log/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

// GetAll retrieves every expense, newest date first.
func (r *ExpenseRepository) GetAll() ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByID(id string) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.db.Where("id = ?", id).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

// GetByDateRange retrieves expenses with dates inside the inclusive bounds.
func (r *ExpenseRepository) GetByDateRange(start, end string) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByCategory(category string) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Where("category = ?", category).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Create(exp *expenseDatamodel.Expense) error {
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	return r.db.Create(exp).Error
}

func (r *ExpenseRepository) Update(exp *expenseDatamodel.Expense) error {
	return r.db.Save(exp).Error
}

func (r *ExpenseRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&expenseDatamodel.Expense{}).Error
}

func (r *ExpenseRepository) TotalAmount() (float64, error) {
	var total float64
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// MonthlyAverage is the mean of per-month sums over every month that has at
// least one expense. substr(date,1,7) yields the "YYYY-MM" bucket key and
// works on both Postgres and the SQLite test database.
func (r *ExpenseRepository) MonthlyAverage() (float64, error) {
	var count int64
	if err := r.db.Model(&expenseDatamodel.Expense{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var avg float64
	err := r.db.Raw(
		"SELECT AVG(monthly_total) FROM (SELECT SUM(amount) AS monthly_total FROM expenses GROUP BY substr(date, 1, 7)) AS monthly",
	).Scan(&avg).Error
	return avg, err
}
