package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InsertAndRecent(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, "the moon orbits the earth", "True", 0.91))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Insert(ctx, "the moon is made of cheese", "False", 0.88))

	records, err := s.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "the moon is made of cheese", records[0].Claim)
	assert.Equal(t, "False", records[0].Label)
	assert.InDelta(t, 0.88, records[0].Confidence, 1e-9)
	assert.NotEmpty(t, records[0].ID)
}

func TestStore_RecentLimit(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(ctx, "claim", "Low Confidence", 0.4))
	}

	records, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStore_EmptyHistory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	records, err := s.Recent(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, records)
}
