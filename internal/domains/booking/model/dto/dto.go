package dto

import (
	"strings"

	"github.com/google/uuid"

	"workshop/internal/domains/booking/model"
	"workshop/shared"
	"workshop/shared/constant"
	gDto "workshop/shared/dto"
	gModel "workshop/shared/model"
	"workshop/shared/timezone"
)

type SubmitBookingRequest struct {
	VehicleName   string `json:"vehicle_name"   validate:"required,min=2,max=100"`
	Registration  string `json:"registration"   validate:"required,plate"`
	OwnerName     string `json:"owner_name"     validate:"required,min=2,max=100"`
	OwnerPhone    string `json:"owner_phone"    validate:"required,msisdn"`
	OwnerEmail    string `json:"owner_email"    validate:"omitempty,email"`
	Category      string `json:"category"       validate:"required,oneof=minor_service major_service diagnostics detailing_bodywork"`
	PreferredDate string `json:"preferred_date" validate:"required"`
	Concierge     bool   `json:"concierge"`
	Description   string `json:"description"    validate:"omitempty,max=500"`
}

// Normalize canonicalizes user input before validation.
func (s *SubmitBookingRequest) Normalize() {
	s.Registration = strings.ToUpper(strings.TrimSpace(s.Registration))
	s.OwnerPhone = strings.TrimSpace(s.OwnerPhone)
	s.OwnerEmail = strings.TrimSpace(s.OwnerEmail)
}

func (s *SubmitBookingRequest) ToModel(user string) (model.ServiceBooking, error) {
	preferredDate, err := timezone.Parse(constant.CalendarDateFormat, s.PreferredDate)
	if err != nil {
		return model.ServiceBooking{}, err
	}

	return model.ServiceBooking{
		ID:            uuid.NewString(),
		VehicleName:   s.VehicleName,
		Registration:  s.Registration,
		OwnerName:     s.OwnerName,
		OwnerPhone:    s.OwnerPhone,
		OwnerEmail:    s.OwnerEmail,
		Category:      s.Category,
		PreferredDate: preferredDate,
		Concierge:     s.Concierge,
		Description:   s.Description,
		Status:        model.StatusScheduled,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BookingResponse struct {
	ID            string `json:"id"`
	VehicleName   string `json:"vehicle_name"`
	Registration  string `json:"registration"`
	OwnerName     string `json:"owner_name"`
	OwnerPhone    string `json:"owner_phone"`
	OwnerEmail    string `json:"owner_email,omitempty"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	PreferredDate string `json:"preferred_date"`
	Concierge     bool   `json:"concierge"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.ServiceBooking) {
	r.ID = mod.ID
	r.VehicleName = mod.VehicleName
	r.Registration = mod.Registration
	r.OwnerName = mod.OwnerName
	r.OwnerPhone = mod.OwnerPhone
	r.OwnerEmail = mod.OwnerEmail
	r.Category = mod.Category
	r.CategoryLabel = constant.ServiceCategoryLabels[mod.Category]
	r.PreferredDate = timezone.Format(mod.PreferredDate, constant.CalendarDateFormat)
	r.Concierge = mod.Concierge
	r.Description = mod.Description
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.ServiceBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
