package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"workshop/internal/domains/workshop/model"
	"workshop/shared"
	"workshop/shared/constant"
	gDto "workshop/shared/dto"
	gModel "workshop/shared/model"
	"workshop/shared/timezone"
)

type CreateVehicleRequest struct {
	Registration     string `json:"registration"       validate:"required,plate"`
	VehicleName      string `json:"vehicle_name"       validate:"required,min=2,max=100"`
	ServiceType      string `json:"service_type"       validate:"required,oneof=minor_service major_service diagnostics detailing_bodywork"`
	CustomerName     string `json:"customer_name"      validate:"required,min=2,max=100"`
	CustomerPhone    string `json:"customer_phone"     validate:"required,msisdn"`
	ReportedIssue    string `json:"reported_issue"     validate:"omitempty,max=500"`
	AssignedMechanic string `json:"assigned_mechanic"  validate:"omitempty,max=100"`
	EnteredAt        string `json:"entered_at"         validate:"omitempty"`
	EstimatedReadyAt string `json:"estimated_ready_at" validate:"omitempty"`
}

// Normalize canonicalizes user input before validation, so a lowercase plate
// is not rejected on case alone.
func (c *CreateVehicleRequest) Normalize() {
	c.Registration = strings.ToUpper(strings.TrimSpace(c.Registration))
	c.CustomerPhone = strings.TrimSpace(c.CustomerPhone)
}

func (c *CreateVehicleRequest) ToModel(user string) (model.WorkshopVehicle, error) {
	enteredAt := timezone.Now()

	if c.EnteredAt != "" {
		parsed, err := timezone.Parse(constant.CalendarDateFormat, c.EnteredAt)
		if err != nil {
			return model.WorkshopVehicle{}, err
		}

		enteredAt = parsed
	}

	var estimatedReadyAt time.Time

	if c.EstimatedReadyAt != "" {
		parsed, err := timezone.Parse(constant.CalendarDateFormat, c.EstimatedReadyAt)
		if err != nil {
			return model.WorkshopVehicle{}, err
		}

		estimatedReadyAt = parsed
	}

	return model.WorkshopVehicle{
		ID:               uuid.NewString(),
		Registration:     c.Registration,
		VehicleName:      c.VehicleName,
		ServiceType:      c.ServiceType,
		Stage:            model.StageScheduled,
		CustomerName:     c.CustomerName,
		CustomerPhone:    c.CustomerPhone,
		ReportedIssue:    c.ReportedIssue,
		AssignedMechanic: c.AssignedMechanic,
		EnteredAt:        enteredAt,
		EstimatedReadyAt: estimatedReadyAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type OverrideStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=scheduled in_bay repairing ready"`
}

type VehicleResponse struct {
	ID               string `json:"id"`
	Registration     string `json:"registration"`
	VehicleName      string `json:"vehicle_name"`
	ServiceType      string `json:"service_type"`
	ServiceTypeLabel string `json:"service_type_label"`
	Stage            string `json:"stage"`
	StageLabel       string `json:"stage_label"`
	CanAdvance       bool   `json:"can_advance"`
	CanRegress       bool   `json:"can_regress"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	ReportedIssue    string `json:"reported_issue"`
	AssignedMechanic string `json:"assigned_mechanic"`
	EnteredAt        string `json:"entered_at"`
	EstimatedReadyAt string `json:"estimated_ready_at,omitempty"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(mod model.WorkshopVehicle) {
	_, canAdvance := mod.Stage.Next()
	_, canRegress := mod.Stage.Prev()

	r.ID = mod.ID
	r.Registration = mod.Registration
	r.VehicleName = mod.VehicleName
	r.ServiceType = mod.ServiceType
	r.ServiceTypeLabel = constant.ServiceCategoryLabels[mod.ServiceType]
	r.Stage = string(mod.Stage)
	r.StageLabel = mod.Stage.Label()
	r.CanAdvance = canAdvance
	r.CanRegress = canRegress
	r.CustomerName = mod.CustomerName
	r.CustomerPhone = mod.CustomerPhone
	r.ReportedIssue = mod.ReportedIssue
	r.AssignedMechanic = mod.AssignedMechanic
	r.EnteredAt = timezone.Format(mod.EnteredAt, constant.CalendarDateFormat)

	if !mod.EstimatedReadyAt.IsZero() {
		r.EstimatedReadyAt = timezone.Format(mod.EstimatedReadyAt, constant.CalendarDateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.WorkshopVehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}

type BoardColumn struct {
	Stage    string            `json:"stage"`
	Label    string            `json:"label"`
	Count    int               `json:"count"`
	Vehicles []VehicleResponse `json:"vehicles"`
}

type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}

func (r *BoardResponse) FromModels(byStage map[model.Stage][]model.WorkshopVehicle) {
	r.Columns = make([]BoardColumn, len(model.Stages))

	for i, stage := range model.Stages {
		vehicles := byStage[stage]

		column := BoardColumn{
			Stage:    string(stage),
			Label:    stage.Label(),
			Count:    len(vehicles),
			Vehicles: make([]VehicleResponse, len(vehicles)),
		}

		for j, mod := range vehicles {
			column.Vehicles[j].FromModel(mod)
		}

		r.Columns[i] = column
	}
}
