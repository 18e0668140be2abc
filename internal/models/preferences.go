package models

import (
	"time"
)

// Preference namespaces. UI-facing state (favorites, search history, live
// config) and simulation state (selected coins, params) persist under
// separate namespaces; transient state like the current search text is
// never written here.
const (
	PreferenceNamespaceUI         = "ui"
	PreferenceNamespaceSimulation = "simulation"
)

// PreferenceRecord is one namespaced key-value entry of persisted state.
// Value holds a JSON document.
type PreferenceRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Namespace string    `json:"namespace" gorm:"uniqueIndex:idx_pref_ns_key;not null"`
	Key       string    `json:"key" gorm:"uniqueIndex:idx_pref_ns_key;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PreferenceRecord) TableName() string {
	return "preferences"
}
