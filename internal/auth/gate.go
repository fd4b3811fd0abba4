// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

// AdminEmail is provisioned as an administrator on its first login. Outside
// demo mode the password has to match Gate.AdminHash.
const AdminEmail = "admin@luxeplate.com"

var (
	ErrInvalidCredentials = errors.New("account not found, please check your credentials")
	ErrEmailTaken         = errors.New("this email address is already registered")
	ErrInvalidInput       = errors.New("name, email and password are required")
)

type Store interface {
	db.UserStore
	db.SessionStore
}

// Gate resolves the user behind a browser session id.
type Gate struct {
	store  Store
	logger *slog.Logger
	// Demo accepts any password for an existing account.
	Demo bool
	// AdminHash is the bcrypt hash the admin password is checked against
	// before the admin account is provisioned. Empty disables provisioning
	// outside demo mode.
	AdminHash string
}

func NewGate(store Store, demo bool) *Gate {
	return &Gate{
		store:  store,
		logger: slog.Default().WithGroup("auth"),
		Demo:   demo,
	}
}

func (g *Gate) Login(ctx context.Context, sid, email, password string) (*model.User, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Gate.Login")
	defer span.End()

	email = model.NormalizeEmail(email)
	user, err := g.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, db.ErrNotFound) && email == AdminEmail:
		if !g.Demo && (g.AdminHash == "" || bcrypt.CompareHashAndPassword([]byte(g.AdminHash), []byte(password)) != nil) {
			span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
			return nil, ErrInvalidCredentials
		}
		span.AddEvent("provision admin account")
		return g.Register(ctx, sid, "System Admin", email, password, model.RoleAdmin)
	case errors.Is(err, db.ErrNotFound):
		span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
		return nil, ErrInvalidCredentials
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !g.Demo {
		if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
			return nil, ErrInvalidCredentials
		}
	}

	if err := g.store.PutSession(ctx, sid, user.ID); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open session: %w", err)
	}
	g.logger.InfoContext(ctx, "login", "user", user.ID, "role", user.Role)
	return user, nil
}

func (g *Gate) Register(ctx context.Context, sid, name, email, password string, role model.Role) (*model.User, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Gate.Register", trace.WithAttributes(attribute.String("role", role.String())))
	defer span.End()

	name, email = strings.TrimSpace(name), model.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if role == model.RoleGuest {
		role = model.RoleDiner
	}

	if _, err := g.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:            name,
		Email:           email,
		Role:            role,
		Avatar:          db.AvatarURL(name, role),
		FavoriteChefIDs: []uuid.UUID{},
		PasswordHash:    string(hash),
	}
	if _, err := g.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := g.store.PutSession(ctx, sid, user.ID); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open session: %w", err)
	}
	g.logger.InfoContext(ctx, "registered", "user", user.ID, "role", role)
	return user, nil
}

// Logout forgets the session. Unknown sessions are ignored.
func (g *Gate) Logout(ctx context.Context, sid string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Gate.Logout")
	defer span.End()

	return g.store.DeleteSession(ctx, sid)
}

// CurrentSession returns the signed in user or nil.
func (g *Gate) CurrentSession(ctx context.Context, sid string) (*model.User, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Gate.CurrentSession")
	defer span.End()

	userID, err := g.store.GetSession(ctx, sid)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	user, err := g.store.GetUserByID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		g.logger.WarnContext(ctx, "session points at unknown user, drop it", "user", userID)
		return nil, g.store.DeleteSession(ctx, sid)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return user, nil
}

// UpdateCurrentUser persists a changed profile of the signed in user.
func (g *Gate) UpdateCurrentUser(ctx context.Context, sid string, user *model.User) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Gate.UpdateCurrentUser")
	defer span.End()

	userID, err := g.store.GetSession(ctx, sid)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if userID != user.ID {
		err := errors.New("session belongs to a different user")
		span.RecordError(err)
		return err
	}
	existing, err := g.store.GetUserByID(ctx, user.ID)
	if err != nil {
		return err
	}
	// role and credentials are not editable through the profile
	user.Role = existing.Role
	user.PasswordHash = existing.PasswordHash
	user.Email = model.NormalizeEmail(user.Email)
	if err := g.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}
