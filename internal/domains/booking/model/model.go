package model

import (
	"time"

	gModel "workshop/shared/model"
)

const (
	EntityName = "service booking"
	TableName  = "service_bookings"
)

const (
	FieldID            = "id"
	FieldRegistration  = "registration"
	FieldOwnerName     = "owner_name"
	FieldOwnerPhone    = "owner_phone"
	FieldCategory      = "category"
	FieldStatus        = "status"
	FieldPreferredDate = "preferred_date"
)

// StatusScheduled is the only status a fresh booking can carry. Later
// statuses belong to the workshop pipeline, not the intake ledger.
const StatusScheduled = "scheduled"

type ServiceBooking struct {
	ID            string    `db:"id"`
	VehicleName   string    `db:"vehicle_name"`
	Registration  string    `db:"registration"`
	OwnerName     string    `db:"owner_name"`
	OwnerPhone    string    `db:"owner_phone"`
	OwnerEmail    string    `db:"owner_email"`
	Category      string    `db:"category"`
	PreferredDate time.Time `db:"preferred_date"`
	Concierge     bool      `db:"concierge"`
	Description   string    `db:"description"`
	Status        string    `db:"status"`
	gModel.Metadata
}
