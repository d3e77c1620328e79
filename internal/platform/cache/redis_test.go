package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewPingsBeforeReturning(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), mr.Addr(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewHonorsPingTimeout(t *testing.T) {
	// A blackhole address forces the ping to run into the deadline.
	start := time.Now()
	_, err := New(context.Background(), "10.255.255.1:6379", 100*time.Millisecond)
	require.Error(t, err)
	require.Less(t, time.Since(start), 3*time.Second)
}
