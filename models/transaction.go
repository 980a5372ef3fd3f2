package models

import "time"

// Transaction is a single income or expense entry belonging to a user.
// Date is stored as a plain YYYY-MM-DD string so range filters and month
// grouping stay lexical.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Type        string    `gorm:"size:32;not null" json:"type"`
	Category    string    `gorm:"size:255;not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        string    `gorm:"size:10;not null;index" json:"date"`
	Description string    `gorm:"size:512" json:"description"`
}
