package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActiveByCourtAndDayQuery(t *testing.T) {
	query, args, err := buildActiveByCourtAndDayQuery(3, 1)
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, court_id, day_of_week, start_minute, end_minute, active, created_at, updated_at"+
		" FROM availability_rules WHERE court_id = $1 AND day_of_week = $2 AND active = $3"+
		" ORDER BY start_minute ASC, id ASC", query)
	assert.Equal(t, []interface{}{int64(3), 1, true}, args)
}
