package preferences

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cryptodash/internal/models"
)

// PreferencesDAO persists namespaced key-value records of durable UI and
// simulation state.
type PreferencesDAO struct {
	db *gorm.DB
}

// PreferencesDAOInterface defines the contract for preference data access.
type PreferencesDAOInterface interface {
	Get(namespace, key string) (string, bool, error)
	Set(namespace, key, value string) error
	Delete(namespace, key string) error
}

// NewPreferencesDAO creates a new preferences DAO instance.
func NewPreferencesDAO(db *gorm.DB) PreferencesDAOInterface {
	return &PreferencesDAO{
		db: db,
	}
}

// Get returns the stored JSON value, with found=false on a missing key.
func (d *PreferencesDAO) Get(namespace, key string) (string, bool, error) {
	var record models.PreferenceRecord
	err := d.db.Where("namespace = ? AND key = ?", namespace, key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %s/%s: %w", namespace, key, err)
	}
	return record.Value, true, nil
}

// Set upserts the value for a namespaced key.
func (d *PreferencesDAO) Set(namespace, key, value string) error {
	record := models.PreferenceRecord{
		Namespace: namespace,
		Key:       key,
		Value:     value,
	}

	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error

	if err != nil {
		return fmt.Errorf("failed to set preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes a namespaced key. Missing keys are not an error.
func (d *PreferencesDAO) Delete(namespace, key string) error {
	err := d.db.Where("namespace = ? AND key = ?", namespace, key).
		Delete(&models.PreferenceRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete preference %s/%s: %w", namespace, key, err)
	}
	return nil
}
