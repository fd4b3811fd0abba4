// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role int

const (
	// RoleGuest is the role of a browser context without a session.
	RoleGuest Role = iota
	RoleDiner
	RoleChef
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleGuest: "GUEST",
	RoleDiner: "DINER",
	RoleChef:  "CHEF",
	RoleAdmin: "ADMIN",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	in := strings.ToUpper(strings.TrimSpace(string(b)))
	for role, name := range roleNames {
		if name == in {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", string(b))
}

type User struct {
	ID              uuid.UUID   `json:"id"`
	CreatedAt       *time.Time  `json:"created_at,omitempty"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            Role        `json:"role"`
	Avatar          string      `json:"avatar,omitempty"`
	FavoriteChefIDs []uuid.UUID `json:"favorite_chef_ids"`
	PasswordHash    string      `json:"password_hash,omitempty"`
}

func (u *User) IsFavorite(chefID uuid.UUID) bool {
	for _, id := range u.FavoriteChefIDs {
		if id == chefID {
			return true
		}
	}
	return false
}

// ToggleFavorite flips the membership of chefID and reports whether the chef
// is a favorite afterwards.
func (u *User) ToggleFavorite(chefID uuid.UUID) bool {
	for idx, id := range u.FavoriteChefIDs {
		if id == chefID {
			ids := make([]uuid.UUID, 0, len(u.FavoriteChefIDs)-1)
			ids = append(ids, u.FavoriteChefIDs[:idx]...)
			u.FavoriteChefIDs = append(ids, u.FavoriteChefIDs[idx+1:]...)
			return false
		}
	}
	u.FavoriteChefIDs = append(append([]uuid.UUID{}, u.FavoriteChefIDs...), chefID)
	return true
}

// Public returns a copy without credentials.
func (u User) Public() User {
	u.PasswordHash = ""
	u.FavoriteChefIDs = append([]uuid.UUID{}, u.FavoriteChefIDs...)
	return u
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
