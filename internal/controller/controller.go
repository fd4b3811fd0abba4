// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/advisor"
	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
	"github.com/quixsi/luxeplate/internal/notify"
	"github.com/quixsi/luxeplate/internal/payment"
)

type Store interface {
	db.ChefStore
	db.UserStore
	db.BookingStore
	db.JobStore
}

type Authenticator interface {
	Login(ctx context.Context, sid, email, password string) (*model.User, error)
	Register(ctx context.Context, sid, name, email, password string, role model.Role) (*model.User, error)
	Logout(ctx context.Context, sid string) error
	CurrentSession(ctx context.Context, sid string) (*model.User, error)
	UpdateCurrentUser(ctx context.Context, sid string, user *model.User) error
}

type Advisor interface {
	SuggestChefs(ctx context.Context, prompt string, candidates []string) advisor.Result[[]string]
	SimilarMenus(ctx context.Context, cuisine string, pricePoint float64, excludeChefName string) advisor.Result[[]model.MenuRecommendation]
	ConfirmationMessage(ctx context.Context, chefName, menuName string, guests int, date, time string) advisor.Result[string]
}

type PaymentProcessor interface {
	Charge(ctx context.Context, amount float64, card payment.Card) (*payment.Token, error)
}

// SimilarMenusTimeout bounds the background lookup of similar menus.
var SimilarMenusTimeout = 15 * time.Second

// Deps are the collaborators shared by all controllers.
type Deps struct {
	Store    Store
	Auth     Authenticator
	Advisor  Advisor
	Payment  PaymentProcessor
	Notifier notify.Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

// Controller owns the view state of one browser session. Store and adapter
// calls run without holding the lock, their results are folded into whatever
// the state is by the time they return.
type Controller struct {
	sid  string
	deps Deps

	mu    sync.Mutex
	state State

	booking atomic.Bool
	// pending tracks background work. Controllers of a registry share the
	// registry's group.
	pending *sync.WaitGroup
	logger  *slog.Logger
}

func New(sid string, deps Deps) *Controller {
	return newController(sid, deps, &sync.WaitGroup{})
}

func newController(sid string, deps Deps, pending *sync.WaitGroup) *Controller {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{
		sid:     sid,
		deps:    deps,
		state:   Initial(),
		pending: pending,
		logger:  slog.Default().WithGroup("controller"),
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// apply runs an intent. Intents are refused while a booking is being
// charged, the booking flow owns the view until the charge settles.
func (c *Controller) apply(fn func(State) (State, error)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.booking.Load() {
		return c.state, ErrBookingInFlight
	}
	next, err := fn(c.state)
	c.state = next
	return next, err
}

// update is apply without the in-flight check, for the booking flow itself.
func (c *Controller) update(fn func(State) (State, error)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(c.state)
	c.state = next
	return next, err
}

// idle fails with ErrBookingInFlight while a booking is being charged. Intents
// with side effects outside the state check it before touching anything.
func (c *Controller) idle() error {
	if c.booking.Load() {
		return ErrBookingInFlight
	}
	return nil
}

func (c *Controller) set(fn func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state
}

// Wait blocks until background notifications and recommendation lookups are
// done.
func (c *Controller) Wait() {
	c.pending.Wait()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Load restores the persisted session and the initial chef listing.
func (c *Controller) Load(ctx context.Context) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.Load")
	defer span.End()

	chefs, err := c.deps.Store.ListChefs(ctx)
	if err != nil {
		return fail(span, err)
	}
	c.set(func(s State) State {
		s.Chefs = chefs
		return s
	})

	user, err := c.deps.Auth.CurrentSession(ctx, c.sid)
	if err != nil {
		return fail(span, err)
	}
	if user == nil {
		return nil
	}
	return c.sessionChanged(ctx, user)
}

// sessionChanged resolves the chef record of a chef session and installs the user.
func (c *Controller) sessionChanged(ctx context.Context, user *model.User) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.sessionChanged")
	defer span.End()

	var myChef *model.Chef
	if user != nil && user.Role == model.RoleChef {
		chef, err := c.deps.Store.GetChefByID(ctx, user.ID)
		switch {
		case errors.Is(err, db.ErrNotFound):
			span.AddEvent("chef session without chef record")
		case err != nil:
			return fail(span, err)
		default:
			myChef = chef
		}
	}
	c.set(func(s State) State { return sessionChanged(s, user, myChef) })
	return nil
}

func (c *Controller) SelectChef(ctx context.Context, chefID uuid.UUID) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.SelectChef", trace.WithAttributes(attribute.String("chef", chefID.String())))
	defer span.End()

	chef, err := c.deps.Store.GetChefByID(ctx, chefID)
	if err != nil {
		return c.Snapshot(), fail(span, err)
	}
	s, err := c.apply(func(s State) (State, error) { return selectChef(s, chef) })
	if err != nil {
		return s, fail(span, err)
	}

	c.similarMenus(ctx, chef, s.Focus.Menu.PricePerHead)
	return s, nil
}

// similarMenus fills the recommendations of the profile in the background.
// They show up with the next snapshot unless the user moved on to another chef.
func (c *Controller) similarMenus(ctx context.Context, chef *model.Chef, pricePoint float64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SimilarMenusTimeout)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		defer cancel()
		res := c.deps.Advisor.SimilarMenus(ctx, chef.PrimaryCuisine(), pricePoint, chef.Name)
		if res.Degraded {
			c.logger.DebugContext(ctx, "similar menus degraded", "chef", chef.ID)
		}
		c.set(func(s State) State { return similarMenusLoaded(s, chef.ID, res.Value) })
	}()
}

func (c *Controller) BookMenu(ctx context.Context, menuID uuid.UUID) (State, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "Controller.BookMenu", trace.WithAttributes(attribute.String("menu", menuID.String())))
	defer span.End()

	s, err := c.apply(func(s State) (State, error) { return bookMenu(s, menuID) })
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return s, err
}

func (c *Controller) CancelBooking(ctx context.Context) (State, error) {
	return c.apply(cancelBooking)
}

func (c *Controller) FinishBooking(ctx context.Context) (State, error) {
	return c.apply(finishBooking)
}

func (c *Controller) Search(ctx context.Context, params model.SearchParams) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.Search")
	defer span.End()

	chefs, err := c.deps.Store.SearchChefs(ctx, params)
	if err != nil {
		return c.Snapshot(), fail(span, err)
	}
	span.SetAttributes(attribute.Int("results", len(chefs)))
	return c.apply(func(s State) (State, error) { return search(s, params, chefs) })
}

func (c *Controller) Back(ctx context.Context) (State, error) {
	return c.apply(back)
}

// AskConcierge ranks the current listing against a free-text wish.
func (c *Controller) AskConcierge(ctx context.Context, prompt string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.AskConcierge")
	defer span.End()

	s := c.Snapshot()
	names := make([]string, 0, len(s.Chefs))
	for _, chef := range s.Chefs {
		names = append(names, chef.Name)
	}
	res := c.deps.Advisor.SuggestChefs(ctx, prompt, names)
	if res.Degraded {
		span.AddEvent("suggestions degraded")
	}
	return c.set(func(s State) State {
		s.Suggestions = res.Value
		return s
	}), nil
}

func (c *Controller) ChangeTab(ctx context.Context, tab Tab) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.ChangeTab", trace.WithAttributes(attribute.String("tab", tab.String())))
	defer span.End()

	var data TabData
	if s := c.Snapshot(); s.Session != nil {
		var err error
		switch tab {
		case TabFavorites:
			data.Favorites, err = c.favorites(ctx, s.Session.ID)
		case TabEvents:
			data.Bookings, err = c.deps.Store.ListBookingsByUser(ctx, s.Session.ID)
		}
		if err != nil {
			return s, fail(span, err)
		}
	}
	return c.apply(func(s State) (State, error) { return changeTab(s, tab, data) })
}

// favorites re-reads the user so a stale session never hides a change.
func (c *Controller) favorites(ctx context.Context, userID uuid.UUID) ([]*model.Chef, error) {
	user, err := c.deps.Store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.deps.Store.GetChefsByIDs(ctx, user.FavoriteChefIDs...)
}

func (c *Controller) ToggleFavorite(ctx context.Context, chefID uuid.UUID) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.ToggleFavorite", trace.WithAttributes(attribute.String("chef", chefID.String())))
	defer span.End()

	s, err := c.apply(requireSession)
	if err != nil {
		return s, err
	}

	user, err := c.deps.Store.GetUserByID(ctx, s.Session.ID)
	if err != nil {
		return s, fail(span, err)
	}
	added := user.ToggleFavorite(chefID)
	span.SetAttributes(attribute.Bool("added", added))
	if err := c.deps.Auth.UpdateCurrentUser(ctx, c.sid, user); err != nil {
		return s, fail(span, err)
	}

	// the updated user is a new session value, a chef is sent back to the dashboard
	if err := c.sessionChanged(ctx, user); err != nil {
		return c.Snapshot(), fail(span, err)
	}

	var favorites []*model.Chef
	if showsFavorites(c.Snapshot()) {
		if favorites, err = c.deps.Store.GetChefsByIDs(ctx, user.FavoriteChefIDs...); err != nil {
			return c.Snapshot(), fail(span, err)
		}
	}
	return c.set(func(s State) State { return favoritesToggled(s, user, favorites) }), nil
}

func (c *Controller) Navigate(ctx context.Context, to View) (State, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "Controller.Navigate", trace.WithAttributes(attribute.String("view", to.String())))
	defer span.End()

	return c.apply(func(s State) (State, error) { return navigate(s, to) })
}

func (c *Controller) DismissAuth(ctx context.Context) State {
	return c.set(dismissAuth)
}
