package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workshop/internal/domains/booking/model"
	"workshop/shared/failure"
	"workshop/shared/validator"
)

func validRequest() SubmitBookingRequest {
	return SubmitBookingRequest{
		VehicleName:   "Bentley Continental GT",
		Registration:  "KCA 456B",
		OwnerName:     "James Mwangi",
		OwnerPhone:    "0722000111",
		Category:      "diagnostics",
		PreferredDate: "2026-09-15",
	}
}

func TestSubmitBookingValidation(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validRequest()

		assert.NoError(t, validator.ValidateStruct(&req))
	})

	t.Run("lowercase plate is normalized before validation", func(t *testing.T) {
		req := validRequest()
		req.Registration = "kca 456b"

		assert.NoError(t, validator.ValidateStruct(&req))
		assert.Equal(t, "KCA 456B", req.Registration)
	})

	t.Run("every offending field is reported", func(t *testing.T) {
		req := validRequest()
		req.Registration = "INVALID"
		req.OwnerPhone = "12345"
		req.Category = "oil_change"

		err := validator.ValidateStruct(&req)
		assert.Error(t, err)

		fields := failure.GetFields(err)
		assert.Len(t, fields, 3)

		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.Field
		}

		assert.Contains(t, names, "registration")
		assert.Contains(t, names, "owner_phone")
		assert.Contains(t, names, "category")
	})

	t.Run("missing preferred date is rejected", func(t *testing.T) {
		req := validRequest()
		req.PreferredDate = ""

		err := validator.ValidateStruct(&req)
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("email is optional but validated when present", func(t *testing.T) {
		req := validRequest()
		req.OwnerEmail = "not-an-email"

		assert.Error(t, validator.ValidateStruct(&req))

		req.OwnerEmail = "james@example.com"
		assert.NoError(t, validator.ValidateStruct(&req))
	})
}

func TestSubmitBookingToModel(t *testing.T) {
	req := validRequest()
	req.Concierge = true

	booking, err := req.ToModel("concierge-desk")

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusScheduled, booking.Status)
	assert.True(t, booking.Concierge)
	assert.Equal(t, "2026-09-15", booking.PreferredDate.Format("2006-01-02"))
	assert.Equal(t, "concierge-desk", booking.CreatedBy)

	req.PreferredDate = "15/09/2026"
	_, err = req.ToModel("concierge-desk")
	assert.Error(t, err)
}
