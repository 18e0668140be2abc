package history

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"cryptodash/internal/models"
)

// Capacity is the hard bound of the persisted history log. Appends beyond
// it evict the oldest entries first.
const Capacity = 50

// HistoryDAO persists the append-only simulation history.
type HistoryDAO struct {
	db *gorm.DB
}

// HistoryDAOInterface defines the contract for history data access.
type HistoryDAOInterface interface {
	Append(item *models.HistoryItem) error
	List() ([]models.HistoryItem, error)
	GetByID(id string) (*models.HistoryItem, error)
	Clear() error
	Count() (int64, error)
}

// NewHistoryDAO creates a new history DAO instance.
func NewHistoryDAO(db *gorm.DB) HistoryDAOInterface {
	return &HistoryDAO{
		db: db,
	}
}

// Append inserts one history item and evicts the oldest rows beyond the
// capacity bound inside the same transaction.
func (d *HistoryDAO) Append(item *models.HistoryItem) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create history item: %w", err)
		}

		var count int64
		if err := tx.Model(&models.HistoryItem{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count history items: %w", err)
		}

		if count > Capacity {
			overflow := count - Capacity
			var victims []models.HistoryItem
			if err := tx.Order("created_at ASC, id ASC").Limit(int(overflow)).Find(&victims).Error; err != nil {
				return fmt.Errorf("failed to find eviction victims: %w", err)
			}
			for _, victim := range victims {
				if err := tx.Delete(&models.HistoryItem{}, "id = ?", victim.ID).Error; err != nil {
					return fmt.Errorf("failed to evict history item %s: %w", victim.ID, err)
				}
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	log.Printf("Appended history item %s (%s, %s)", item.ID, item.Name, item.Status)
	return nil
}

// List returns all history items, most recent first.
func (d *HistoryDAO) List() ([]models.HistoryItem, error) {
	var items []models.HistoryItem
	if err := d.db.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single history item.
func (d *HistoryDAO) GetByID(id string) (*models.HistoryItem, error) {
	var item models.HistoryItem
	if err := d.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get history item: %w", err)
	}
	return &item, nil
}

// Clear removes all history items.
func (d *HistoryDAO) Clear() error {
	if err := d.db.Where("1 = 1").Delete(&models.HistoryItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	log.Println("Simulation history cleared")
	return nil
}

// Count returns the number of stored items.
func (d *HistoryDAO) Count() (int64, error) {
	var count int64
	if err := d.db.Model(&models.HistoryItem{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count history items: %w", err)
	}
	return count, nil
}
