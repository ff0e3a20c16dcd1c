package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MaintenanceType string

const (
	MaintenanceService MaintenanceType = "service"
	MaintenanceTyres   MaintenanceType = "tyres"
	MaintenanceBrakes  MaintenanceType = "brakes"
	MaintenanceOil     MaintenanceType = "oil"
	MaintenanceOther   MaintenanceType = "other"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceService, MaintenanceTyres, MaintenanceBrakes, MaintenanceOil, MaintenanceOther:
		return true
	}
	return false
}

type MaintenanceRecord struct {
	ID                  uuid.UUID        `json:"id"`
	ProfileID           uuid.UUID        `json:"customer_id"`
	Type                MaintenanceType  `json:"type"`
	Date                time.Time        `json:"date"`
	Distance            float64          `json:"km"`
	NextServiceDistance *float64         `json:"next_service_km"`
	Description         *string          `json:"description"`
	Cost                *decimal.Decimal `json:"cost"`
	Verified            bool             `json:"verified"`
	CreatedAt           time.Time        `json:"created_at"`
}
