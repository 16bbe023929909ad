package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"workshop/shared/constant"
	"workshop/shared/dto"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "stage",
				Value:    "scheduled",
				Operator: dto.FilterOperatorEq,
				Table:    "workshop_vehicles",
			},
			wantWhere: "workshop_vehicles.stage = :stage",
			wantArgs:  map[string]any{"stage": "scheduled"},
		},
		{
			name: "like",
			filter: dto.Filter{
				Field:    "registration",
				Value:    "KDK",
				Operator: dto.FilterOperatorLike,
				Table:    "workshop_vehicles",
			},
			wantWhere: "LOWER(workshop_vehicles.registration) LIKE LOWER(:registration) ",
			wantArgs:  map[string]any{"registration": "%KDK%"},
		},
		{
			name: "in with slice",
			filter: dto.Filter{
				Field:    "stage",
				Value:    []string{"in_bay", "repairing"},
				Operator: dto.FilterOperatorIn,
			},
			wantWhere: "stage IN (:stage_0, :stage_1) ",
			wantArgs:  map[string]any{"stage_0": "in_bay", "stage_1": "repairing"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "stage",
				Value:    "ready",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "stage", Value: "ready", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "assigned_mechanic", Value: "Otieno", Operator: dto.FilterOperatorEq},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(stage = :stage AND assigned_mechanic = :assigned_mechanic)", where)
	assert.Equal(t, map[string]any{"stage": "ready", "assigned_mechanic": "Otieno"}, args)
}

func TestFilterGroupEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParamsFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/vehicles?page=3&limit=25&sort_by=entered_at&sort_dir=asc", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, true)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, "entered_at", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestQueryParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/vehicles", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, true)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)

	// A bare listing request must still produce a deterministic ordering,
	// otherwise LIMIT/OFFSET pagination can repeat or skip rows.
	assert.Equal(t, constant.DefaultValueSortBy, q.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, q.SortDir)
}

func TestQueryParamsNoDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/vehicles", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, false)

	assert.Zero(t, q.Page)
	assert.Zero(t, q.Limit)
	assert.Empty(t, q.SortBy)
	assert.Empty(t, q.SortDir)
}
