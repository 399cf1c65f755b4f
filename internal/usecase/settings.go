package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/port"
	"github.com/heroxshorts/heroxshorts-studio/internal/fixture"
	"github.com/heroxshorts/heroxshorts-studio/internal/simtask"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var planUpdateFailed = Copy{"Error", "Failed to update plan"}

// Display clamps a remaining credit count for rendering.
func Display(value int) int {
	return max(0, value)
}

// PlanUpdate is the settings after a plan change and the toast it raised.
type PlanUpdate struct {
	Settings     entity.UserSettings `json:"settings"`
	Notification entity.Notification `json:"notification"`
}

// SettingsService holds the demo account settings in memory.
type SettingsService struct {
	clock    clockwork.Clock
	delay    time.Duration
	notifier port.Notifier
	logger   *zap.Logger
	task     *simtask.Task

	mu       sync.RWMutex
	settings entity.UserSettings
}

func NewSettingsService(clock clockwork.Clock, delay time.Duration, notifier port.Notifier, logger *zap.Logger) *SettingsService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SettingsService{
		clock:    clock,
		delay:    delay,
		notifier: notifier,
		logger:   logger,
		task:     simtask.New("SETTINGS/plan", simtask.WithClock(clock)),
		settings: fixture.DemoSettings(clock.Now().UTC()),
	}
}

func (s *SettingsService) PlanCredits(plan entity.PlanType) (entity.PlanCredits, error) {
	return fixture.PlanCredits(plan)
}

func (s *SettingsService) Settings() entity.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsService) NextReset() time.Time {
	return s.Settings().NextReset()
}

// UpdatePlan waits out the simulated save, then switches the plan and
// refills the credits of the new tier.
func (s *SettingsService) UpdatePlan(ctx context.Context, plan entity.PlanType) (PlanUpdate, error) {
	var credits entity.PlanCredits
	err := s.task.Start(ctx, simtask.Delay(s.delay), func() error {
		c, err := fixture.PlanCredits(plan)
		credits = c
		return err
	}, nil)
	if errors.Is(err, simtask.ErrBusy) {
		return PlanUpdate{Settings: s.Settings()}, err
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	if _, err := s.task.Wait(ctx); err != nil {
		s.task.Cancel()
		return s.fail(ctx, err)
	}

	now := s.clock.Now().UTC()
	s.mu.Lock()
	s.settings.PlanType = plan
	s.settings.Credits = credits
	s.settings.LastPlanUpdate = now
	updated := s.settings
	s.mu.Unlock()

	n := entity.Info("Plan Updated", fmt.Sprintf("Your plan has been updated to %s", plan))
	s.raise(ctx, n)
	s.logger.Info("plan updated", zap.String("plan", string(plan)))
	return PlanUpdate{Settings: updated, Notification: n}, nil
}

func (s *SettingsService) fail(ctx context.Context, err error) (PlanUpdate, error) {
	n := planUpdateFailed.destructive()
	s.raise(ctx, n)
	s.logger.Warn("plan update failed", zap.Error(err))
	return PlanUpdate{Settings: s.Settings(), Notification: n}, err
}

func (s *SettingsService) raise(ctx context.Context, n entity.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		s.logger.Warn("notification sink failed", zap.Error(err))
	}
}
