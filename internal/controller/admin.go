// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

const (
	// EscrowShare of the revenue is held until events have taken place.
	EscrowShare = 0.4
	// PlatformTake is the commission deducted from chef payouts.
	PlatformTake = 0.12

	recentBookings = 5
)

type Overview struct {
	Revenue     float64 `json:"revenue"`
	EscrowHold  float64 `json:"escrow_hold"`
	PlatformFee float64 `json:"platform_fee"`
	Bookings    int     `json:"bookings"`
	// Confirmed counts confirmed and completed bookings.
	Confirmed      int                 `json:"confirmed"`
	ActiveChefs    int                 `json:"active_chefs"`
	UsersByRole    map[string]int      `json:"users_by_role"`
	JobsByStatus   map[string]int      `json:"jobs_by_status"`
	Contracts      map[string]float64  `json:"contract_value_by_status"`
	RecentBookings []*model.Booking    `json:"recent_bookings"`
	Jobs           []*model.JobPosting `json:"jobs"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// AdminOverview collects the platform figures for the admin dashboard.
func (c *Controller) AdminOverview(ctx context.Context) (*Overview, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.AdminOverview")
	defer span.End()

	if s := c.Snapshot(); s.Role() != model.RoleAdmin {
		return nil, ErrForbidden
	}

	var (
		bookings  []*model.Booking
		chefs     []*model.Chef
		users     []*model.User
		jobs      []*model.JobPosting
		contracts []*model.Contract
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { bookings, err = c.deps.Store.ListBookings(gctx); return })
	g.Go(func() (err error) { chefs, err = c.deps.Store.ListChefs(gctx); return })
	g.Go(func() (err error) { users, err = c.deps.Store.ListUsers(gctx); return })
	g.Go(func() (err error) { jobs, err = c.deps.Store.ListJobs(gctx); return })
	g.Go(func() (err error) { contracts, err = c.deps.Store.ListContracts(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fail(span, err)
	}

	o := &Overview{
		Bookings:     len(bookings),
		ActiveChefs:  len(chefs),
		UsersByRole:  map[string]int{},
		JobsByStatus: map[string]int{},
		Contracts:    map[string]float64{},
		Jobs:         jobs,
	}
	for _, b := range bookings {
		o.Revenue += b.TotalPrice
		if b.Status == model.BookingStatusConfirmed || b.Status == model.BookingStatusCompleted {
			o.Confirmed++
		}
	}
	o.Revenue = roundCents(o.Revenue)
	o.EscrowHold = roundCents(o.Revenue * EscrowShare)
	o.PlatformFee = roundCents(o.Revenue * PlatformTake)
	for _, u := range users {
		o.UsersByRole[u.Role.String()]++
	}
	for _, j := range jobs {
		o.JobsByStatus[j.Status]++
	}
	for _, ct := range contracts {
		o.Contracts[ct.Status] += ct.Value
	}

	newest := append([]*model.Booking(nil), bookings...)
	db.NewestFirst(newest)
	if len(newest) > recentBookings {
		newest = newest[:recentBookings]
	}
	o.RecentBookings = newest
	return o, nil
}
