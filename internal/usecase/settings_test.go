package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/fixture"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/notify"
	"github.com/heroxshorts/heroxshorts-studio/internal/simtask"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var settingsEpoch = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newSettings(t *testing.T) (*SettingsService, *clockwork.FakeClock, *notify.Recorder) {
	t.Helper()
	fc := clockwork.NewFakeClockAt(settingsEpoch)
	rec := notify.NewRecorder()
	return NewSettingsService(fc, time.Second, rec, zap.NewNop()), fc, rec
}

func TestDisplayClampsNegative(t *testing.T) {
	assert.Equal(t, 0, Display(-3))
	assert.Equal(t, 0, Display(0))
	assert.Equal(t, 7, Display(7))
}

func TestDemoSettings(t *testing.T) {
	svc, _, _ := newSettings(t)

	s := svc.Settings()
	assert.Equal(t, fixture.DemoEmail, s.Email)
	assert.Equal(t, entity.PlanFree, s.PlanType)
	assert.Equal(t, 10, s.Credits.VideoProcess)
	assert.Equal(t, settingsEpoch.AddDate(0, 1, 0), svc.NextReset())

	lifetime, err := svc.PlanCredits(entity.PlanLifetime)
	require.NoError(t, err)
	assert.Equal(t, 999999, lifetime.VideoProcess)
}

func TestUpdatePlanAfterDelay(t *testing.T) {
	svc, fc, rec := newSettings(t)

	type outcome struct {
		update PlanUpdate
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		u, err := svc.UpdatePlan(context.Background(), entity.PlanPro)
		done <- outcome{u, err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	assert.Equal(t, entity.PlanFree, svc.Settings().PlanType)

	_, err := svc.UpdatePlan(context.Background(), entity.PlanStarter)
	assert.ErrorIs(t, err, simtask.ErrBusy)

	fc.Advance(time.Second)

	var got outcome
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("plan update did not finish")
	}
	require.NoError(t, got.err)
	assert.Equal(t, entity.PlanPro, got.update.Settings.PlanType)
	assert.Equal(t, 200, got.update.Settings.Credits.VideoProcess)
	assert.Equal(t, "Plan Updated", got.update.Notification.Title)
	assert.Equal(t, "Your plan has been updated to PRO", got.update.Notification.Description)

	assert.Equal(t, settingsEpoch.Add(time.Second), svc.Settings().LastPlanUpdate)
	assert.Equal(t, settingsEpoch.Add(time.Second).AddDate(0, 1, 0), svc.NextReset())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Plan Updated", last.Title)
	assert.Len(t, rec.All(), 1)
}

func TestUpdatePlanUnknown(t *testing.T) {
	svc, fc, rec := newSettings(t)

	u, err := svc.UpdatePlan(context.Background(), entity.PlanType("GOLD"))
	require.ErrorIs(t, err, fixture.ErrUnknownPlan)
	assert.Equal(t, "Failed to update plan", u.Notification.Description)
	assert.True(t, u.Notification.IsDestructive())
	assert.Equal(t, entity.PlanFree, svc.Settings().PlanType)
	assert.Len(t, rec.All(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 0))
}

func TestUpdatePlanCancelled(t *testing.T) {
	svc, fc, _ := newSettings(t)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := svc.UpdatePlan(ctx, entity.PlanEnterprise)
		errs <- err
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, fc.BlockUntilContext(waitCtx, 1))
	cancel()

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled update did not return")
	}
	assert.Equal(t, entity.PlanFree, svc.Settings().PlanType)
	require.NoError(t, fc.BlockUntilContext(waitCtx, 0))
}
