package models

import "time"

// User is an account holder. Accounts are created once at registration and
// never mutated or deleted afterwards.
type User struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time     `json:"-"`
	UpdatedAt      time.Time     `json:"-"`
	Username       string        `gorm:"size:255;not null;unique" json:"username"`
	HashedPassword []byte        `gorm:"not null" json:"-"`
	Transactions   []Transaction `json:"-"`
}
