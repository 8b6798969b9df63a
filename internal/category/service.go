package category

import (
	"log/slog"
	"strings"
	"sync"

	errors "github.com/hanifn/expense-log/internal"
	categoryDatamodel "github.com/hanifn/expense-log/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.Category, error)
	GetByID(id string) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Create(category *categoryDatamodel.Category) error
	Update(category *categoryDatamodel.Category) error
	Delete(id string) error
	UsageCount(id string) (int64, error)
}

// Service owns the in-memory category list. The cache is filled by Refresh
// and re-filled after every mutation; readers get snapshot copies.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger

	mu     sync.RWMutex
	cached []*Category
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Refresh reloads the cached list from the repository (name ascending).
func (s *Service) Refresh() error {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to fetch categories", "error", err)
		return errors.NewInternalError("Failed to fetch categories", err)
	}

	s.mu.Lock()
	s.cached = FromDataModelSlice(records)
	s.mu.Unlock()
	return nil
}

// Categories returns a copy of the cached list.
func (s *Service) Categories() []*Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Category, len(s.cached))
	copy(out, s.cached)
	return out
}

func (s *Service) GetByID(id string) (*Category, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch category", "error", err, "category_id", id)
		return nil, errors.NewInternalError("Failed to fetch category", err)
	}
	if record == nil {
		return nil, errors.ErrCategoryNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetByName(name string) (*Category, error) {
	record, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to fetch category by name", "error", err, "name", name)
		return nil, errors.NewInternalError("Failed to fetch category by name", err)
	}
	if record == nil {
		return nil, nil
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// Name uniqueness is case-insensitive; the database index backstops
	// this check.
	for _, existing := range s.Categories() {
		if strings.EqualFold(existing.Name, strings.TrimSpace(dto.Name)) {
			return nil, errors.ErrCategoryExists
		}
	}

	record := &categoryDatamodel.Category{
		Name:  strings.TrimSpace(dto.Name),
		Color: dto.Color,
	}
	if err := s.repo.Create(record); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, errors.NewInternalError("Failed to create category", err)
	}

	s.logger.Info("category created", "category_id", record.ID, "name", record.Name)

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

func (s *Service) Update(id string, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch category for update", "error", err, "category_id", id)
		return nil, errors.NewInternalError("Failed to fetch category", err)
	}
	if record == nil {
		return nil, errors.ErrCategoryNotFound
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		for _, existing := range s.Categories() {
			if existing.ID != id && strings.EqualFold(existing.Name, name) {
				return nil, errors.ErrCategoryExists
			}
		}
		record.Name = name
	}
	if dto.Color != nil {
		record.Color = *dto.Color
	}

	if err := s.repo.Update(record); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, errors.NewInternalError("Failed to update category", err)
	}

	s.logger.Info("category updated", "category_id", id)

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

// Delete refuses when the category is referenced by any expense. The usage
// check supplies the user-facing count; the database FK constraint refuses
// atomically even if an expense lands between the check and the delete.
func (s *Service) Delete(id string) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch category for delete", "error", err, "category_id", id)
		return errors.NewInternalError("Failed to fetch category", err)
	}
	if record == nil {
		return errors.ErrCategoryNotFound
	}

	count, err := s.repo.UsageCount(id)
	if err != nil {
		s.logger.Error("failed to check category usage", "error", err, "category_id", id)
		return errors.NewInternalError("Failed to check category usage", err)
	}
	if count > 0 {
		s.logger.Warn("category delete blocked", "category_id", id, "usage_count", count)
		return errors.NewCategoryInUseError(count)
	}

	if err := s.repo.Delete(id); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return errors.NewInternalError("Failed to delete category", err)
	}

	s.logger.Info("category deleted", "category_id", id, "name", record.Name)

	return s.Refresh()
}

func (s *Service) UsageCount(id string) (int64, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch category for usage count", "error", err, "category_id", id)
		return 0, errors.NewInternalError("Failed to get category usage count", err)
	}
	if record == nil {
		return 0, errors.ErrCategoryNotFound
	}

	count, err := s.repo.UsageCount(id)
	if err != nil {
		s.logger.Error("failed to get category usage count", "error", err, "category_id", id)
		return 0, errors.NewInternalError("Failed to get category usage count", err)
	}
	return count, nil
}
