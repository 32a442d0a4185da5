package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/dto"
)

func int64p(v int64) *int64 { return &v }

func strp(v string) *string { return &v }

func float64p(v float64) *float64 { return &v }

func TestCreateProductDTOValidate(t *testing.T) {
	t.Run("negative price rejected with field", func(t *testing.T) {
		d := dto.CreateProductDTO{Name: "Starlink Kit", Price: int64p(-5)}
		err := d.Validate()
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "price", ve.Field)
	})

	t.Run("missing price rejected", func(t *testing.T) {
		d := dto.CreateProductDTO{Name: "Starlink Kit"}
		_, ok := apperr.AsValidation(d.Validate())
		assert.True(t, ok)
	})

	t.Run("zero price allowed", func(t *testing.T) {
		d := dto.CreateProductDTO{Name: "Promo Kit", Price: int64p(0)}
		assert.NoError(t, d.Validate())
	})

	t.Run("positive price allowed", func(t *testing.T) {
		d := dto.CreateProductDTO{Name: "Starlink Kit", Price: int64p(45000000)}
		assert.NoError(t, d.Validate())
	})
}

func TestUpdateProductDTOValidate(t *testing.T) {
	t.Run("negative price rejected with field", func(t *testing.T) {
		d := dto.UpdateProductDTO{Price: int64p(-5)}
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "price", ve.Field)
	})

	t.Run("absent fields pass", func(t *testing.T) {
		d := dto.UpdateProductDTO{}
		assert.NoError(t, d.Validate())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		d := dto.UpdateProductDTO{Name: strp("")}
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "name", ve.Field)
	})
}
