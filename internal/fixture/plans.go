package fixture

import (
	"errors"
	"fmt"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
)

var ErrUnknownPlan = errors.New("unknown plan")

const DemoEmail = "demo@example.com"

const unlimited = 999999

var planCredits = map[entity.PlanType]entity.PlanCredits{
	entity.PlanFree:       {VideoProcess: 10, GenVoice: 5, Broll: 3, AIImage: 5, AIVideo: 2, Clip: 5, GenMusic: 3, GenDubbing: 2},
	entity.PlanStarter:    {VideoProcess: 50, GenVoice: 25, Broll: 15, AIImage: 25, AIVideo: 10, Clip: 25, GenMusic: 15, GenDubbing: 10},
	entity.PlanPro:        {VideoProcess: 200, GenVoice: 100, Broll: 60, AIImage: 100, AIVideo: 40, Clip: 100, GenMusic: 60, GenDubbing: 40},
	entity.PlanEnterprise: {VideoProcess: 1000, GenVoice: 500, Broll: 300, AIImage: 500, AIVideo: 200, Clip: 500, GenMusic: 300, GenDubbing: 200},
	entity.PlanLifetime:   {VideoProcess: unlimited, GenVoice: unlimited, Broll: unlimited, AIImage: unlimited, AIVideo: unlimited, Clip: unlimited, GenMusic: unlimited, GenDubbing: unlimited},
}

// PlanCredits returns the quota table of a tier.
func PlanCredits(plan entity.PlanType) (entity.PlanCredits, error) {
	c, ok := planCredits[plan]
	if !ok {
		return entity.PlanCredits{}, fmt.Errorf("plan credits for %q: %w", plan, ErrUnknownPlan)
	}
	return c, nil
}

// DemoSettings is what the settings page loads on mount.
func DemoSettings(now time.Time) entity.UserSettings {
	return entity.UserSettings{
		Email:           DemoEmail,
		PlanType:        entity.PlanFree,
		Credits:         planCredits[entity.PlanFree],
		LastCreditReset: now,
		LastPlanUpdate:  now,
	}
}
