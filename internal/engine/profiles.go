// Package engine orchestrates profile updates: it keeps the stored allocation
// in step with income, fixed expenses and role, and manages investments and
// goal contributions.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/finmate/internal/budget"
	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/extract"
	"github.com/Veraticus/finmate/internal/model"
	"github.com/Veraticus/finmate/internal/service"
)

// DateLayout is the format of contribution and purchase dates.
const DateLayout = "2006-01-02"

// Profiles manages user profiles on top of a ProfileStore.
type Profiles struct {
	store  service.ProfileStore
	logger *slog.Logger
	now    func() time.Time
}

// NewProfiles creates a profile manager.
func NewProfiles(store service.ProfileStore, logger *slog.Logger) *Profiles {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiles{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the profile for userID or common.ErrNotFound.
func (p *Profiles) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, common.NewUserError("user ID is required", common.ErrInvalidInput)
	}
	return p.store.GetProfile(ctx, userID)
}

// Save validates profile, fills in missing IDs, mirrors the current
// allocation into it and stores it under userID.
func (p *Profiles) Save(ctx context.Context, userID string, profile *model.UserProfile) (*model.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, common.NewUserError("user ID is required", common.ErrInvalidInput)
	}
	if profile == nil {
		return nil, common.NewUserError("profile is required", common.ErrInvalidInput)
	}
	if profile.Role != model.RoleUnset && !profile.Role.Valid() {
		return nil, common.NewUserError(fmt.Sprintf("unknown role %q", profile.Role), common.ErrInvalidInput)
	}
	if profile.Income < 0 {
		return nil, common.NewUserError("income cannot be negative", common.ErrInvalidInput)
	}

	profile.UserID = userID
	for i := range profile.FixedExpenses {
		fe := &profile.FixedExpenses[i]
		if fe.ID == "" {
			fe.ID = uuid.NewString()
		}
		fe.Category = extract.NormalizeCategory(fe.Category)
	}
	for i := range profile.Goals {
		if profile.Goals[i].ID == "" {
			profile.Goals[i].ID = uuid.NewString()
		}
	}
	for i := range profile.Investments {
		if profile.Investments[i].ID == "" {
			profile.Investments[i].ID = uuid.NewString()
		}
	}

	MirrorAllocation(profile)

	if err := p.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	common.LogInfo(p.logger, "Saved profile", common.Fields{
		"user_id":     userID,
		"role":        string(profile.Role),
		"daily_limit": profile.DailySpendingLimit,
	})
	return profile, nil
}

// MirrorAllocation recomputes the allocation for profile and copies it into
// the profile's mirror fields.
func MirrorAllocation(profile *model.UserProfile) model.Allocation {
	alloc := budget.Allocate(profile.Income, budget.FixedExpensesTotal(profile.FixedExpenses), profile.Role)
	profile.MonthlyNeeds = alloc.MonthlyNeeds
	profile.MonthlyWants = alloc.MonthlyWants
	profile.MonthlySavings = alloc.MonthlySavings
	profile.DailySpendingLimit = alloc.DailyLimit
	return alloc
}

// AddInvestment appends inv to the user's portfolio.
func (p *Profiles) AddInvestment(ctx context.Context, userID string, inv model.Investment) (*model.Investment, error) {
	if strings.TrimSpace(inv.Name) == "" {
		return nil, common.NewUserError("investment name is required", common.ErrInvalidInput)
	}
	if inv.PurchaseAmount < 0 || inv.CurrentValue < 0 {
		return nil, common.NewUserError("investment amounts cannot be negative", common.ErrInvalidInput)
	}

	profile, err := p.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.PurchaseDate == "" {
		inv.PurchaseDate = p.now().Format(DateLayout)
	}
	profile.Investments = append(profile.Investments, inv)

	if err := p.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save investment: %w", err)
	}
	return &inv, nil
}

// AddContribution records a payment towards goalID and raises its current amount.
func (p *Profiles) AddContribution(ctx context.Context, userID, goalID string, c model.Contribution) (*model.Goal, error) {
	if c.Amount <= 0 {
		return nil, common.NewUserError("contribution amount must be positive", common.ErrInvalidInput)
	}
	if c.Date == "" {
		c.Date = p.now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return nil, common.NewUserError("contribution date must be YYYY-MM-DD", common.ErrInvalidInput)
	}

	profile, err := p.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var goal *model.Goal
	for i := range profile.Goals {
		if profile.Goals[i].ID == goalID {
			goal = &profile.Goals[i]
			break
		}
	}
	if goal == nil {
		return nil, fmt.Errorf("%w: goal %s", common.ErrNotFound, goalID)
	}

	goal.Contributions = append(goal.Contributions, c)
	goal.CurrentAmount = decimal.NewFromFloat(goal.CurrentAmount).
		Add(decimal.NewFromFloat(c.Amount)).
		InexactFloat64()

	if err := p.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save contribution: %w", err)
	}
	return goal, nil
}

// Portfolio summarizes the user's investments.
func (p *Profiles) Portfolio(ctx context.Context, userID string) (model.PortfolioMetrics, error) {
	profile, err := p.Get(ctx, userID)
	if err != nil {
		return model.PortfolioMetrics{}, err
	}
	return budget.Portfolio(profile.Investments), nil
}
