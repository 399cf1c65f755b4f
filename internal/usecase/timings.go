package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/infra/config"
	"github.com/heroxshorts/heroxshorts-studio/internal/simtask"
)

// Timings are the simulated delays of every page.
type Timings struct {
	UploadTick     time.Duration
	UploadStep     int
	UploadCap      int
	UploadDuration time.Duration
	BrollUpload    time.Duration
	URLDelay       time.Duration
	ProcessDelay   time.Duration
	StatusDelay    time.Duration
	StatusInterval time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		UploadTick:     500 * time.Millisecond,
		UploadStep:     5,
		UploadCap:      95,
		UploadDuration: 3 * time.Second,
		BrollUpload:    2 * time.Second,
		URLDelay:       1500 * time.Millisecond,
		ProcessDelay:   2 * time.Second,
		StatusDelay:    time.Second,
		StatusInterval: 2 * time.Second,
	}
}

func TimingsFromConfig(cfg *config.Config) Timings {
	return Timings{
		UploadTick:     cfg.UploadTick,
		UploadStep:     cfg.UploadStep,
		UploadCap:      cfg.UploadCap,
		UploadDuration: cfg.UploadDuration,
		BrollUpload:    cfg.BrollUpload,
		URLDelay:       cfg.URLDelay,
		ProcessDelay:   cfg.ProcessDelay,
		StatusDelay:    cfg.StatusDelay,
		StatusInterval: cfg.StatusInterval,
	}
}

func (t Timings) uploadPlan(p *UploadPolicy) simtask.Plan {
	if !p.Ticking {
		return simtask.Delay(t.BrollUpload)
	}
	return simtask.Plan{
		Duration: t.UploadDuration,
		Tick:     t.UploadTick,
		Step:     t.UploadStep,
		Cap:      t.UploadCap,
	}
}

// statusPlan is one wait between polls plus the cost of the status check.
func (t Timings) statusPlan() simtask.Plan {
	return simtask.Delay(t.StatusInterval + t.StatusDelay)
}

var errInjectedFault = errors.New("fault injected")

// FaultForFlows fails every task of the listed flows ("CLIP_ANY_MOMENT"), or
// a single task of a flow ("CLIP_ANY_MOMENT/upload").
func FaultForFlows(targets []string) simtask.FaultInjector {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return func(task string) error {
		name := strings.ToUpper(task)
		if _, ok := set[name]; ok {
			return errInjectedFault
		}
		flow, _, _ := strings.Cut(name, "/")
		if _, ok := set[flow]; ok {
			return errInjectedFault
		}
		return nil
	}
}
