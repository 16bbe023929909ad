package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"workshop/shared/failure"
	"workshop/shared/validator"
)

type intakeForm struct {
	Registration string `json:"registration" validate:"required,plate"`
	Phone        string `json:"phone"        validate:"required,msisdn"`
	Email        string `json:"email"        validate:"omitempty,email"`
}

func (p *intakeForm) Normalize() {
	p.Registration = strings.ToUpper(strings.TrimSpace(p.Registration))
}

func TestValidateVarPlate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "with space", value: "KDK 123A", wantErr: false},
		{name: "without space", value: "KDK123A", wantErr: false},
		{name: "lowercase rejected without normalization", value: "kdk 123a", wantErr: true},
		{name: "missing leading K", value: "ADK 123A", wantErr: true},
		{name: "too few digits", value: "KDK 12A", wantErr: true},
		{name: "trailing digit instead of letter", value: "KDK 1234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, "plate")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVarMsisdn(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "leading zero", value: "0712345678", wantErr: false},
		{name: "international prefix", value: "+254712345678", wantErr: false},
		{name: "missing prefix", value: "712345678", wantErr: true},
		{name: "too short", value: "071234567", wantErr: true},
		{name: "letters", value: "07123A5678", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, "msisdn")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNormalizesBeforeValidating(t *testing.T) {
	form := intakeForm{Registration: " kdk 123a ", Phone: "0712345678"}

	err := validator.ValidateStruct(&form)

	assert.NoError(t, err)
	assert.Equal(t, "KDK 123A", form.Registration)
}

func TestValidateReportsEveryField(t *testing.T) {
	body := strings.NewReader(`{"registration":"BAD","phone":"12345","email":"not-an-email"}`)

	form := intakeForm{}
	err := validator.Validate(body, &form)

	assert.Error(t, err)

	fields := failure.GetFields(err)
	assert.Len(t, fields, 3)

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Field)
	}

	assert.ElementsMatch(t, []string{"registration", "phone", "email"}, names)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	form := intakeForm{}
	err := validator.Validate(strings.NewReader("{"), &form)

	assert.Error(t, err)
	assert.Empty(t, failure.GetFields(err))
}
