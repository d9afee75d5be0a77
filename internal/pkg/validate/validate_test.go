package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Nombre string           `json:"nombre" validate:"required"`
	Stock  int              `json:"stock" validate:"gte=0"`
	Precio *decimal.Decimal `json:"precio" validate:"omitempty,gte=0"`
}

func TestStruct(t *testing.T) {
	ok := decimal.RequireFromString("1.5")
	require.NoError(t, Struct(sample{Nombre: "a", Precio: &ok}))
	require.NoError(t, Struct(sample{Nombre: "a"}))

	neg := decimal.RequireFromString("-2")
	err := Struct(sample{Stock: -1, Precio: &neg})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "nombre must satisfy required")
	assert.Contains(t, err.Error(), "stock must satisfy gte=0")
	assert.Contains(t, err.Error(), "precio must satisfy gte=0")
}
