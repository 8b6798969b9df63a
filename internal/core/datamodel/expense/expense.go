package expense

import "time"

// Expense is the persisted expense record. Dates are stored as zero-padded
// "YYYY-MM-DD" strings so lexicographic order matches chronological order.
type Expense struct {
	ID         string    `gorm:"primaryKey;column:id"`
	Title      string    `gorm:"column:title;not null"`
	Amount     float64   `gorm:"column:amount;not null"`
	Date       string    `gorm:"column:date;not null;index"`
	Category   string    `gorm:"column:category;not null"`
	CategoryID *string   `gorm:"column:category_id"`
	Note       *string   `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
