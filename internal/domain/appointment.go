package domain

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID          uuid.UUID         `json:"id"`
	ProfileID   uuid.UUID         `json:"customer_id"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"`
	ServiceType string            `json:"service_type"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}
