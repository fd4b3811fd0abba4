// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

func TestRegistryRestoresSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg := NewRegistry(f.deps)
	c, err := reg.Get(ctx, "sid")
	require.NoError(t, err)
	again, err := reg.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Same(t, c, again)

	_, err = c.ChefLogin(ctx, "julian@luxeplate.com", "any")
	require.NoError(t, err)

	restored, err := NewRegistry(f.deps).Get(ctx, "sid")
	require.NoError(t, err)
	s := restored.Snapshot()
	require.NotNil(t, s.Session)
	assert.Equal(t, db.ChefJulianID, s.Session.ID)
	assert.Equal(t, ViewChefDashboard, s.View)

	other, err := reg.Get(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, other.Snapshot().Session)
}

func TestRegistryEvict(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	f.deps.Now = func() time.Time { return now }
	reg := NewRegistry(f.deps)
	ctx := context.Background()

	first, err := reg.Get(ctx, "sid")
	require.NoError(t, err)
	now = now.Add(time.Hour)
	assert.Equal(t, 1, reg.Evict(30*time.Minute))

	second, err := reg.Get(ctx, "sid")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, reg.Evict(30*time.Minute))
}

// gatedNotifier holds every confirmation until release is closed.
type gatedNotifier struct {
	release chan struct{}
	sent    atomic.Int32
}

func (n *gatedNotifier) SendBookingConfirmation(context.Context, *model.User, *model.Booking, string) error {
	<-n.release
	n.sent.Add(1)
	return nil
}

func TestRegistryEvictKeepsChargingControllers(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	f.deps.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	pay := &blockingPayment{started: make(chan struct{}), release: make(chan struct{})}
	f.deps.Payment = pay
	notifier := &gatedNotifier{release: make(chan struct{})}
	f.deps.Notifier = notifier
	reg := NewRegistry(f.deps)
	ctx := context.Background()

	c, err := reg.Get(ctx, "sid")
	require.NoError(t, err)
	inBookingFlow(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitBooking(ctx, omakase, testCard)
		done <- err
	}()
	<-pay.started

	mu.Lock()
	now = now.Add(time.Hour)
	mu.Unlock()
	assert.Equal(t, 0, reg.Evict(30*time.Minute))
	assert.Equal(t, 1, reg.Len())

	close(pay.release)
	require.NoError(t, <-done)

	// the confirmation is still pending, eviction must not lose track of it
	assert.Equal(t, 1, reg.Evict(30*time.Minute))
	assert.Equal(t, 0, reg.Len())
	close(notifier.release)
	reg.Wait()
	assert.Equal(t, int32(1), notifier.sent.Load())
}
