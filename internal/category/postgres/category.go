package postgres

import (
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/hanifn/expense-log/internal"
	"github.com/hanifn/expense-log/internal/category"
	categoryDatamodel "github.com/hanifn/expense-log/internal/core/datamodel/category"
	expenseDatamodel "github.com/hanifn/expense-log/internal/core/datamodel/expense"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll() ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByName(name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.Category) error {
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	err := r.db.Create(cat).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrCategoryExists
	}
	return err
}

func (r *CategoryRepository) Update(cat *categoryDatamodel.Category) error {
	err := r.db.Save(cat).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrCategoryExists
	}
	return err
}

// Delete removes the row. The expenses.category_id FK is ON DELETE RESTRICT,
// so a referenced category is refused by the database itself regardless of
// any prior usage check.
func (r *CategoryRepository) Delete(id string) error {
	err := r.db.Where("id = ?", id).Delete(&categoryDatamodel.Category{}).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		count, countErr := r.UsageCount(id)
		if countErr != nil {
			count = 0
		}
		return apperrors.NewCategoryInUseError(count)
	}
	return err
}

// UsageCount counts expenses referencing the category, by category_id when
// the link was stored and by name for older rows that only carry the name.
func (r *CategoryRepository) UsageCount(id string) (int64, error) {
	cat, err := r.GetByID(id)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, nil
	}

	var count int64
	err = r.db.Model(&expenseDatamodel.Expense{}).
		Where("category_id = ? OR (category_id IS NULL AND category = ?)", id, cat.Name).
		Count(&count).Error
	return count, err
}
