// Package storage provides the profile persistence layer for FinMate.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/finmate/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidProfile = errors.New("invalid profile")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProfile checks the fields every stored profile must carry.
func validateProfile(profile *model.UserProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile", ErrNilParameter)
	}
	if strings.TrimSpace(profile.UserID) == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidProfile)
	}
	if profile.Role != model.RoleUnset && !profile.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidProfile, profile.Role)
	}
	if profile.Income < 0 {
		return fmt.Errorf("%w: negative income", ErrInvalidProfile)
	}
	return nil
}
