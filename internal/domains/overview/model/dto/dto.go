package dto

import (
	"time"

	bookingModel "workshop/internal/domains/booking/model"
	workshopModel "workshop/internal/domains/workshop/model"
	"workshop/shared/constant"
	"workshop/shared/timezone"
)

const (
	ItemKindBooking = "booking"
	ItemKindVehicle = "workshop_vehicle"
)

type StageCount struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SummaryResponse is the front-desk dashboard: how much work is booked, how
// much is on the floor, and how much of it is actively being worked on.
type SummaryResponse struct {
	TotalBookings int          `json:"total_bookings"`
	TotalVehicles int          `json:"total_vehicles"`
	StageCounts   []StageCount `json:"stage_counts"`
	InProgress    int          `json:"in_progress"`
}

func (r *SummaryResponse) FromCounts(totalBookings int, byStage map[workshopModel.Stage]int) {
	r.TotalBookings = totalBookings
	r.StageCounts = make([]StageCount, len(workshopModel.Stages))

	for i, stage := range workshopModel.Stages {
		r.StageCounts[i] = StageCount{
			Stage: string(stage),
			Label: stage.Label(),
			Count: byStage[stage],
		}

		r.TotalVehicles += byStage[stage]
	}

	r.InProgress = byStage[workshopModel.StageInBay] + byStage[workshopModel.StageRepairing]
}

// Item is one row of the merged listing. Kind tells the two sources apart;
// Status carries the booking status or the vehicle stage depending on Kind.
type Item struct {
	Kind          string `json:"kind"`
	ID            string `json:"id"`
	Registration  string `json:"registration"`
	VehicleName   string `json:"vehicle_name"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Status        string `json:"status"`
	Concierge     bool   `json:"concierge"`
	Date          string `json:"date"`

	createdAt time.Time
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Item) FromBooking(mod bookingModel.ServiceBooking) {
	i.Kind = ItemKindBooking
	i.ID = mod.ID
	i.Registration = mod.Registration
	i.VehicleName = mod.VehicleName
	i.CustomerName = mod.OwnerName
	i.CustomerPhone = mod.OwnerPhone
	i.Category = mod.Category
	i.CategoryLabel = constant.ServiceCategoryLabels[mod.Category]
	i.Status = mod.Status
	i.Concierge = mod.Concierge
	i.Date = timezone.Format(mod.PreferredDate, constant.CalendarDateFormat)
	i.createdAt = mod.CreatedAt
}

func (i *Item) FromVehicle(mod workshopModel.WorkshopVehicle) {
	i.Kind = ItemKindVehicle
	i.ID = mod.ID
	i.Registration = mod.Registration
	i.VehicleName = mod.VehicleName
	i.CustomerName = mod.CustomerName
	i.CustomerPhone = mod.CustomerPhone
	i.Category = mod.ServiceType
	i.CategoryLabel = constant.ServiceCategoryLabels[mod.ServiceType]
	i.Status = string(mod.Stage)
	i.Date = timezone.Format(mod.EnteredAt, constant.CalendarDateFormat)
	i.createdAt = mod.CreatedAt
}

type AllItemsResponse struct {
	Items     []Item `json:"items"`
	TotalData int    `json:"total_data"`
}

// Customer is one unique customer across bookings and workshop vehicles.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CustomersResponse struct {
	Customers []Customer `json:"customers"`
	TotalData int        `json:"total_data"`
}
