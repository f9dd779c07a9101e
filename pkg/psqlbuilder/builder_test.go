package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("reservations").
		Where(squirrel.Eq{"court_id": int64(1)}).
		Where(squirrel.Eq{"status": []string{"pending", "confirmed"}}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM reservations WHERE court_id = $1 AND status IN ($2,$3)", query)
	assert.Equal(t, []interface{}{int64(1), "pending", "confirmed"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("reservations").
		Set("status", "expired").
		Where(squirrel.Eq{"id": int64(7)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE reservations SET status = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{"expired", int64(7)}, args)
}
