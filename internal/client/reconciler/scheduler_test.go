package reconciler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	n   atomic.Int32
	err error
}

func (s *countingSweeper) Sweep(ctx context.Context) error {
	s.n.Add(1)
	return s.err
}

func TestScheduler_RunsSweep(t *testing.T) {
	sw := &countingSweeper{err: common.ErrNetworkUnavailable}
	s, err := NewScheduler("@every 1s", sw, time.Second, logging.NewNop())
	require.NoError(t, err)
	require.True(t, s.Next().IsZero())

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return sw.n.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", &countingSweeper{}, 0, logging.NewNop())
	require.Error(t, err)
}

func TestScheduler_RunAppliesTimeout(t *testing.T) {
	var deadline bool
	sw := sweepFunc(func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	})
	s, err := NewScheduler("@hourly", sw, time.Minute, logging.NewNop())
	require.NoError(t, err)

	s.run()
	require.True(t, deadline)
}

type sweepFunc func(ctx context.Context) error

func (f sweepFunc) Sweep(ctx context.Context) error { return f(ctx) }
