package model

import (
	"time"

	"workshop/shared/model"
)

const (
	TableName  = "workshop_vehicles"
	EntityName = "workshop vehicle"

	FieldID               = "id"
	FieldRegistration     = "registration"
	FieldVehicleName      = "vehicle_name"
	FieldServiceType      = "service_type"
	FieldStage            = "stage"
	FieldCustomerName     = "customer_name"
	FieldCustomerPhone    = "customer_phone"
	FieldReportedIssue    = "reported_issue"
	FieldAssignedMechanic = "assigned_mechanic"
	FieldEnteredAt        = "entered_at"
	FieldEstimatedReadyAt = "estimated_ready_at"
)

// WorkshopVehicle is a vehicle actively tracked through the stage pipeline by
// admin staff. It is not derived from a ServiceBooking; converting an accepted
// booking into a workshop record is an explicit admin intake.
type WorkshopVehicle struct {
	ID               string    `db:"id"`
	Registration     string    `db:"registration"`
	VehicleName      string    `db:"vehicle_name"`
	ServiceType      string    `db:"service_type"`
	Stage            Stage     `db:"stage"`
	CustomerName     string    `db:"customer_name"`
	CustomerPhone    string    `db:"customer_phone"`
	ReportedIssue    string    `db:"reported_issue"`
	AssignedMechanic string    `db:"assigned_mechanic"`
	EnteredAt        time.Time `db:"entered_at"`
	EstimatedReadyAt time.Time `db:"estimated_ready_at"`
	model.Metadata
}
