package models

// Category is a named grouping for transactions (e.g. "salary"/income).
// No endpoint reads or writes it; rows come from the provisioning CLI only.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex:idx_category_name_type" json:"name"`
	Type string `gorm:"size:32;not null;uniqueIndex:idx_category_name_type" json:"type"`
}
