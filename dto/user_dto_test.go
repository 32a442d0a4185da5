package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/dto"
)

func TestCreateUserDTOValidate(t *testing.T) {
	t.Run("ADMIN and STAFF accepted", func(t *testing.T) {
		for _, role := range []string{"ADMIN", "STAFF"} {
			d := dto.CreateUserDTO{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass", Role: role}
			assert.NoError(t, d.Validate())
		}
	})

	t.Run("unknown role rejected with field", func(t *testing.T) {
		d := dto.CreateUserDTO{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass", Role: "MANAGER"}
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "role", ve.Field)
	})

	t.Run("lowercase role rejected", func(t *testing.T) {
		d := dto.CreateUserDTO{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass", Role: "admin"}
		_, ok := apperr.AsValidation(d.Validate())
		assert.True(t, ok)
	})
}

func TestUpdateUserDTOValidate(t *testing.T) {
	t.Run("role change validated", func(t *testing.T) {
		d := dto.UpdateUserDTO{Role: strp("ROOT")}
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "role", ve.Field)
	})

	t.Run("partial name/email update passes", func(t *testing.T) {
		d := dto.UpdateUserDTO{Name: strp("Ada L."), Email: strp("ada@example.com")}
		assert.NoError(t, d.Validate())
	})
}
