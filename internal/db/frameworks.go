package db

import (
	"gorm.io/gorm"

	"github.com/mhofwell/agent-augments/internal/models"
)

// CreateFramework inserts a new framework row.
func (db *DB) CreateFramework(f *models.Framework) error {
	return db.Create(f).Error
}

// GetFramework retrieves a framework by ID.
func (db *DB) GetFramework(id string) (*models.Framework, error) {
	var f models.Framework
	err := db.First(&f, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// GetFrameworkBySlug retrieves a framework by its slug.
func (db *DB) GetFrameworkBySlug(slug string) (*models.Framework, error) {
	var f models.Framework
	err := db.First(&f, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// ListFrameworks returns all frameworks ordered by sort order.
func (db *DB) ListFrameworks() ([]models.Framework, error) {
	var frameworks []models.Framework
	err := db.Order("sort_order ASC").Find(&frameworks).Error
	return frameworks, err
}

// ListActiveFrameworks returns active frameworks ordered by sort order.
func (db *DB) ListActiveFrameworks() ([]models.Framework, error) {
	var frameworks []models.Framework
	err := db.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&frameworks).Error
	return frameworks, err
}

// MaxFrameworkSortOrder returns the current maximum sort order, or 0
// when no frameworks exist.
func (db *DB) MaxFrameworkSortOrder() (int, error) {
	var max *int
	err := db.Model(&models.Framework{}).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// UpdateFrameworkStars refreshes the cached star count.
func (db *DB) UpdateFrameworkStars(id string, stars int) error {
	return db.Model(&models.Framework{}).Where("id = ?", id).
		Update("stars", stars).Error
}
