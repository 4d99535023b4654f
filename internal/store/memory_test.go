package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-example-app/internal/checkin"
)

func TestMemory(t *testing.T) {
	m := NewMemory("checkins")
	ctx := context.Background()

	info, err := m.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "checkins", info.Name)
	assert.Zero(t, info.ItemCount)

	_, found, err := m.Get(ctx, "patient-1")
	require.NoError(t, err)
	assert.False(t, found)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Put(ctx, checkin.NewRecord("patient-1", at)))
	require.NoError(t, m.Put(ctx, checkin.NewRecord("patient-1", at.Add(time.Second))))
	assert.Equal(t, 1, m.Len())

	rec, found, err := m.Get(ctx, "patient-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, at.Add(time.Second).Equal(rec.ObservedAt))

	boom := errors.New("boom")
	m.GetErr["patient-1"] = boom
	_, _, err = m.Get(ctx, "patient-1")
	assert.ErrorIs(t, err, boom)
}
