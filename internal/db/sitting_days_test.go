package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nzpt/internal/testutil"
)

func TestSittingDayCounts(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	testutil.CreateSittingDay(t, database, testutil.Date(2024, time.February, 13), false, 54)
	testutil.CreateSittingDay(t, database, testutil.Date(2024, time.February, 14), true, 54)
	testutil.CreateSittingDay(t, database, testutil.Date(2024, time.February, 15), true, 54)
	testutil.CreateSittingDay(t, database, testutil.Date(2022, time.May, 3), true, 53)

	ctx := context.Background()

	sat, err := database.CountSittingDays(ctx, 54)
	require.NoError(t, err)
	assert.EqualValues(t, 3, sat)

	urgent, err := database.CountUrgentDays(ctx, 54)
	require.NoError(t, err)
	assert.EqualValues(t, 2, urgent)

	urgent53, err := database.CountUrgentDays(ctx, 53)
	require.NoError(t, err)
	assert.EqualValues(t, 1, urgent53)

	none, err := database.CountSittingDays(ctx, 48)
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestInsertSittingDay_DuplicateIgnored(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	day := testutil.Date(2024, time.March, 5)
	testutil.CreateSittingDay(t, database, day, true, 54)
	testutil.CreateSittingDay(t, database, day, false, 54)

	sat, err := database.CountSittingDays(context.Background(), 54)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sat)
}

func TestLatestUrgentDay(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	latest, err := database.LatestUrgentDay(ctx, 54)
	require.NoError(t, err)
	assert.Nil(t, latest, "no urgent day yet")

	testutil.CreateSittingDay(t, database, testutil.Date(2024, time.June, 20), true, 54)
	testutil.CreateSittingDay(t, database, testutil.Date(2024, time.December, 12), true, 54)
	testutil.CreateSittingDay(t, database, testutil.Date(2024, time.December, 17), false, 54)
	testutil.CreateSittingDay(t, database, testutil.Date(2025, time.January, 9), true, 53)

	latest, err = database.LatestUrgentDay(ctx, 54)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2024-12-12", latest.Format("2006-01-02"))
}
