// Package fixture holds the constant demo data the simulated backend serves:
// the My Projects catalog, the plan credit table and the generator outputs.
package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
)

//go:embed projects.json
var projectsJSON []byte

var (
	seedOnce sync.Once
	seed     []entity.Project
	seedErr  error
)

func loadSeed() ([]entity.Project, error) {
	seedOnce.Do(func() {
		if err := json.Unmarshal(projectsJSON, &seed); err != nil {
			seedErr = fmt.Errorf("decode project seed: %w", err)
		}
	})
	return seed, seedErr
}

// Projects returns a fresh copy of the seeded catalog in display order.
func Projects() ([]entity.Project, error) {
	base, err := loadSeed()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Project, len(base))
	for i, p := range base {
		out[i] = p.Clone()
	}
	return out, nil
}

// StaticSource serves the seeded catalog, byte-identical on every call.
type StaticSource struct {
	extra []entity.Project
}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// WithProjects appends projects after the seed. Used to put non-completed
// projects (processing, failed) in front of the feed, which the seed never does.
func (s *StaticSource) WithProjects(projects ...entity.Project) *StaticSource {
	extra := append(append([]entity.Project(nil), s.extra...), projects...)
	return &StaticSource{extra: extra}
}

func (s *StaticSource) Projects(_ context.Context) ([]entity.Project, error) {
	out, err := Projects()
	if err != nil {
		return nil, err
	}
	for _, p := range s.extra {
		out = append(out, p.Clone())
	}
	return out, nil
}
