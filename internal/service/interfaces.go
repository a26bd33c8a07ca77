// Package service defines the interfaces shared between FinMate packages.
package service

import (
	"context"

	"github.com/Veraticus/finmate/internal/model"
)

// ProfileStore persists one UserProfile document per user. Writes replace the
// whole document; the last write wins.
type ProfileStore interface {
	// GetProfile returns common.ErrNotFound when the user has no profile.
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, profile *model.UserProfile) error
	Close() error
}
