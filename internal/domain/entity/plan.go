package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type PlanType string

const (
	PlanFree       PlanType = "FREE"
	PlanStarter    PlanType = "STARTER"
	PlanPro        PlanType = "PRO"
	PlanEnterprise PlanType = "ENTERPRISE"
	PlanLifetime   PlanType = "LIFETIME"
)

var PlanTypes = []PlanType{PlanFree, PlanStarter, PlanPro, PlanEnterprise, PlanLifetime}

var ErrUnknownPlanType = errors.New("unknown plan type")

// ParsePlanType accepts any casing of a known tier.
func ParsePlanType(s string) (PlanType, error) {
	p := PlanType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PlanTypes {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownPlanType)
}

// PlanCredits is the per-feature quota table of a tier.
type PlanCredits struct {
	VideoProcess int `json:"videoProcess"`
	GenVoice     int `json:"genvoice"`
	Broll        int `json:"broll"`
	AIImage      int `json:"aiImage"`
	AIVideo      int `json:"aiVideo"`
	Clip         int `json:"clip"`
	GenMusic     int `json:"genmusic"`
	GenDubbing   int `json:"gendubbing"`
}

type UserSettings struct {
	Email           string      `json:"email"`
	PlanType        PlanType    `json:"plan_type"`
	Credits         PlanCredits `json:"credits"`
	LastCreditReset time.Time   `json:"last_credit_reset"`
	LastPlanUpdate  time.Time   `json:"last_plan_update"`
}

// NextReset is one month after the later of the last credit reset and the last plan change.
func (s UserSettings) NextReset() time.Time {
	base := s.LastCreditReset
	if s.LastPlanUpdate.After(base) {
		base = s.LastPlanUpdate
	}
	return base.AddDate(0, 1, 0)
}
