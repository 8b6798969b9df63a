package category

import (
	errors "github.com/hanifn/expense-log/internal"
	"github.com/hanifn/expense-log/internal/core/common/validation"
)

type CreateCategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (dto CreateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).
		Required().
		MinLength(validation.NameMinLength).
		MaxLength(validation.NameMaxLength)
	v.Field("color", dto.Color).
		Required().
		HexColor()
	return v.Validate()
}

// UpdateCategoryDTO is a partial update; nil fields are left untouched.
type UpdateCategoryDTO struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (dto UpdateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).
			Required().
			MinLength(validation.NameMinLength).
			MaxLength(validation.NameMaxLength)
	}
	if dto.Color != nil {
		v.Field("color", *dto.Color).
			Required().
			HexColor()
	}
	return v.Validate()
}

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type UsageResponse struct {
	CategoryID string `json:"category_id"`
	UsageCount int64  `json:"usage_count"`
	InUse      bool   `json:"in_use"`
}

type PaletteResponse struct {
	Colors []ColorSet `json:"colors"`
}
