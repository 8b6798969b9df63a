package category

import "time"

// Category is the persisted category record. Name uniqueness is enforced
// case-insensitively by a lower(name) unique index in the migration; the
// uniqueIndex tag covers the SQLite test schema.
type Category struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Color     string    `gorm:"column:color;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
