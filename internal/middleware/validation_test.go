package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "salespulse/internal/errors"
)

type tableQuery struct {
	Format  string `query:"format" validate:"omitempty,oneof=json csv"`
	BOM     bool   `query:"bom"`
	Limit   int    `query:"limit" validate:"gte=0,lte=1000"`
	Ignored string
}

func TestQueryBinder(t *testing.T) {
	binder := NewQueryBinder()

	tests := []struct {
		name      string
		query     string
		want      tableQuery
		wantField string
	}{
		{"defaults", "", tableQuery{}, ""},
		{"all fields", "format=csv&bom=true&limit=10", tableQuery{Format: "csv", BOM: true, Limit: 10}, ""},
		{"bad enum", "format=xml", tableQuery{}, "format"},
		{"bad bool", "bom=maybe", tableQuery{}, "bom"},
		{"bad int", "limit=ten", tableQuery{}, "limit"},
		{"out of range", "limit=5000", tableQuery{}, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got tableQuery
			err := binder.Bind(httptest.NewRequest(http.MethodGet, "/api/report/tables/x?"+tt.query, nil), &got)

			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			details, ok := apiErr.Details.([]apierrors.ValidationError)
			require.True(t, ok)
			require.Len(t, details, 1)
			assert.Equal(t, tt.wantField, details[0].Field)
		})
	}
}

func TestQueryBinderRejectsNonStruct(t *testing.T) {
	var s string
	err := NewQueryBinder().Bind(httptest.NewRequest(http.MethodGet, "/", nil), &s)
	assert.Error(t, err)
}
