package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/auth"
	"github.com/kelechi/skylinkbackend/models"
)

func TestAuthorize(t *testing.T) {
	admin := &auth.Session{UserID: "1", Email: "admin@example.com", Role: models.RoleAdmin}
	staff := &auth.Session{UserID: "2", Email: "staff@example.com", Role: models.RoleStaff}

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		err := auth.Authorize(nil, auth.AnyStaff()...)
		require.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("admin passes both tiers", func(t *testing.T) {
		assert.NoError(t, auth.Authorize(admin, auth.AnyStaff()...))
		assert.NoError(t, auth.Authorize(admin, models.RoleAdmin))
	})

	t.Run("staff passes general tier only", func(t *testing.T) {
		assert.NoError(t, auth.Authorize(staff, auth.AnyStaff()...))
		err := auth.Authorize(staff, models.RoleAdmin)
		require.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("unknown role is forbidden everywhere", func(t *testing.T) {
		ghost := &auth.Session{UserID: "3", Role: models.Role("SUPERUSER")}
		require.ErrorIs(t, auth.Authorize(ghost, auth.AnyStaff()...), auth.ErrForbidden)
		require.ErrorIs(t, auth.Authorize(ghost, models.RoleAdmin), auth.ErrForbidden)
	})

	t.Run("empty allowed set denies everyone", func(t *testing.T) {
		require.ErrorIs(t, auth.Authorize(admin), auth.ErrForbidden)
	})
}
