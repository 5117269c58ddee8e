package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows, nil), store.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other, nil))

	err := translate(&pgconn.PgError{Code: "23505", ConstraintName: "volunteer_assignments_triple_key"},
		&models.VolunteerAssignment{VolunteerID: "v1", SeniorID: "s1"})
	var dup *apperr.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "volunteerId", dup.Field)
	assert.Equal(t, "v1", dup.Value)

	err = translate(&pgconn.PgError{Code: "23505", ConstraintName: "seniors_email_key"}, &models.Senior{Email: "a@b.co"})
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "email", dup.Field)
	assert.Equal(t, "a@b.co", dup.Value)
}

func TestPostWhere(t *testing.T) {
	where, args := postWhere(models.PostFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = postWhere(models.PostFilter{Status: models.PostPublished, Tag: "care", Search: "Winter%"})
	assert.Contains(t, where, "status = $1")
	assert.Contains(t, where, "$2 = ANY(tags)")
	assert.Contains(t, where, "strpos(lower(title), $3)")
	assert.Equal(t, []any{"published", "care", "winter%"}, args)
}
