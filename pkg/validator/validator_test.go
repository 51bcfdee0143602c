package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

type priced struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0,maxdecimals=4"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		input     priced
		wantField string
		wantTag   string
	}{
		{name: "valid", input: priced{Name: "Chair", Price: 20.5}},
		{name: "four decimals", input: priced{Name: "Chair", Price: 1.2345}},
		{name: "missing name", input: priced{Price: 1}, wantField: "name", wantTag: "required"},
		{name: "negative price", input: priced{Name: "Chair", Price: -1}, wantField: "price", wantTag: "gte"},
		{name: "too many decimals", input: priced{Name: "Chair", Price: 1.23456}, wantField: "price", wantTag: "maxdecimals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}

			require.True(t, validator.IsValidationError(err))

			var verrs govalidator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
			assert.NotEqual(t, "is invalid", validator.ValidationErrorMessage(verrs[0]))
		})
	}
}

func TestValidateVar(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateVar([]int64{1, 2, 2}, "min=1,dive,gt=0"))
	assert.Error(t, v.ValidateVar([]int64{}, "min=1,dive,gt=0"))
	assert.Error(t, v.ValidateVar([]int64{1, 0}, "min=1,dive,gt=0"))
}
