package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
)

func TestBuildListEntriesQuery_HalfOpenWindow(t *testing.T) {
	day, err := domain.NewCalendarDay(2024, 5, 10)
	require.NoError(t, err)
	start, end := day.Window()

	query, args, err := buildListEntriesQuery(start, end)
	require.NoError(t, err)

	assert.Contains(t, query, "e.date >= $1")
	assert.Contains(t, query, "e.date < $2")
	assert.NotContains(t, query, "<=")
	assert.Contains(t, query, "LEFT JOIN users u ON u.id = e.submitted_by")

	require.Len(t, args, 2)
	assert.True(t, time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC).Equal(args[0].(time.Time)))
	assert.True(t, time.Date(2024, 5, 11, 3, 0, 0, 0, time.UTC).Equal(args[1].(time.Time)))
}

func TestBuildListExpensesQuery(t *testing.T) {
	query, args, err := buildListExpensesQuery("2024-05-10")
	require.NoError(t, err)

	assert.Contains(t, query, "FROM expenses")
	assert.Contains(t, query, "date = $1")
	assert.Equal(t, []interface{}{"2024-05-10"}, args)
}
