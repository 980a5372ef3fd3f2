package main

import (
	"errors"
	"strings"

	"fintrack/models"

	"gorm.io/gorm"
)

// ErrDuplicateUser is returned when a username is already taken.
var ErrDuplicateUser = errors.New("user already exists")

// Store abstracts persistence so the endpoint logic stays identical across
// backing databases.
type Store interface {
	CreateUser(username string, passwordHash []byte) (uint, error)
	FindUserByUsername(username string) (*models.User, error)

	CreateTransaction(t *models.Transaction) (uint, error)
	FindTransaction(id, userID uint) (*models.Transaction, error)
	ListTransactions(userID uint, page, limit int) ([]models.Transaction, error)
	UpdateTransaction(id, userID uint, fields TransactionFields) (int64, error)
	DeleteTransaction(id, userID uint) (int64, error)
	SumByType(userID uint, startDate, endDate string) (Summary, error)
	MonthlyTotals(userID uint) ([]MonthlyTotal, error)
}

// TransactionFields are the mutable fields of a transaction; an update
// overwrites all of them.
type TransactionFields struct {
	Type        string
	Category    string
	Amount      float64
	Date        string
	Description string
}

// Summary totals a user's transactions by type. Fields are always present,
// zero when there is nothing to sum.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

// MonthlyTotal is one (month, category) aggregation row.
type MonthlyTotal struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle in the Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateUser(username string, passwordHash []byte) (uint, error) {
	user := models.User{Username: username, HashedPassword: passwordHash}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	return user.ID, nil
}

func (s *gormStore) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) CreateTransaction(t *models.Transaction) (uint, error) {
	if err := s.db.Create(t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (s *gormStore) FindTransaction(id, userID uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions returns one page of the user's transactions in insertion
// order, so pages never overlap.
func (s *gormStore) ListTransactions(userID uint, page, limit int) ([]models.Transaction, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	var items []models.Transaction
	err := s.db.Where("user_id = ?", userID).
		Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (s *gormStore) UpdateTransaction(id, userID uint, fields TransactionFields) (int64, error) {
	res := s.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"type":        fields.Type,
			"category":    fields.Category,
			"amount":      fields.Amount,
			"date":        fields.Date,
			"description": fields.Description,
		})
	return res.RowsAffected, res.Error
}

func (s *gormStore) DeleteTransaction(id, userID uint) (int64, error) {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	return res.RowsAffected, res.Error
}

// SumByType totals income and expense amounts for one user. The date range
// applies only when both bounds are supplied; it is inclusive and compared
// lexically on the YYYY-MM-DD string.
func (s *gormStore) SumByType(userID uint, startDate, endDate string) (Summary, error) {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if startDate != "" && endDate != "" {
		q = q.Where("date BETWEEN ? AND ?", startDate, endDate)
	}
	var sum Summary
	err := q.Select("COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income, " +
		"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expenses").
		Scan(&sum).Error
	if err != nil {
		return Summary{}, err
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpenses
	return sum, nil
}

// MonthlyTotals groups one user's transactions by calendar month and
// category, newest month first. Month is the date string truncated to
// YYYY-MM.
func (s *gormStore) MonthlyTotals(userID uint) ([]MonthlyTotal, error) {
	rows, err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("left(date, 7) AS month, category, SUM(amount) AS total").
		Group("month, category").
		Order("month desc").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []MonthlyTotal
	for rows.Next() {
		var r MonthlyTotal
		if err := rows.Scan(&r.Month, &r.Category, &r.Total); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
