// Package models holds the gorm persistence models.
package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// StateTableName is the table backing every persisted store namespace
const StateTableName = "storefront_states"

// StateModel is one row per namespace holding the store's full serialized state.
// Version counts saves and is bumped by the upsert.
type StateModel struct {
	Namespace string    `gorm:"type:varchar(32);primaryKey"`
	Payload   []byte    `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StateModel) TableName() string {
	return StateTableName
}

// NewStateModel builds a model for ns stamped with at
func NewStateModel(ns shared.Namespace, payload []byte, at time.Time) *StateModel {
	return &StateModel{
		Namespace: ns.String(),
		Payload:   payload,
		Version:   1,
		UpdatedAt: at,
	}
}
