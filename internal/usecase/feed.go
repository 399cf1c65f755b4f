package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/port"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/metrics"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotSelectable   = errors.New("project is not completed")
	ErrUnknownPipeline = errors.New("unknown pipeline type")
)

const (
	DefaultFeedInterval = 5 * time.Second

	pendingProgressText = "Pending - Estimate: 5-30 min to start..."
)

// ProjectFeed is My Projects: a filtered view of a constant catalog, re-read
// on a fixed interval.
type ProjectFeed struct {
	source   port.ProjectSource
	assets   port.AssetResolver
	clock    clockwork.Clock
	interval time.Duration
	logger   *zap.Logger
}

type FeedOption func(*ProjectFeed)

func WithFeedClock(c clockwork.Clock) FeedOption {
	return func(f *ProjectFeed) { f.clock = c }
}

func WithFeedInterval(d time.Duration) FeedOption {
	return func(f *ProjectFeed) {
		if d > 0 {
			f.interval = d
		}
	}
}

func NewProjectFeed(source port.ProjectSource, assets port.AssetResolver, logger *zap.Logger, opts ...FeedOption) *ProjectFeed {
	f := &ProjectFeed{
		source:   source,
		assets:   assets,
		clock:    clockwork.NewRealClock(),
		interval: DefaultFeedInterval,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ListProjects keeps the catalog order. An empty filter lists everything.
func (f *ProjectFeed) ListProjects(ctx context.Context, filter entity.PipelineType) ([]entity.Project, error) {
	if filter != "" && !filter.Valid() {
		return nil, fmt.Errorf("%q: %w", filter, ErrUnknownPipeline)
	}

	ctx, span := otel.Tracer("usecase").Start(ctx, "ProjectFeed.ListProjects")
	defer span.End()
	span.SetAttributes(attribute.String("filter", string(filter)))

	all, err := f.source.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	out := make([]entity.Project, 0, len(all))
	for _, p := range all {
		if filter == "" || p.Type == filter {
			out = append(out, p)
		}
	}

	label := string(filter)
	if label == "" {
		label = "ALL"
	}
	metrics.FeedPollsTotal.WithLabelValues(label).Inc()
	return out, nil
}

// Poll lists immediately and then on every interval until ctx ends.
func (f *ProjectFeed) Poll(ctx context.Context, filter entity.PipelineType, fn func([]entity.Project)) error {
	projects, err := f.ListProjects(ctx, filter)
	if err != nil {
		return err
	}
	fn(projects)

	ticker := f.clock.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			projects, err := f.ListProjects(ctx, filter)
			if err != nil {
				f.logger.Warn("project poll failed", zap.Error(err))
				continue
			}
			fn(projects)
		}
	}
}

// Project opens the detail view. Only completed projects can be opened; clip
// and output paths come back resolved to playable links.
func (f *ProjectFeed) Project(ctx context.Context, id string) (entity.Project, error) {
	all, err := f.source.Projects(ctx)
	if err != nil {
		return entity.Project{}, fmt.Errorf("load projects: %w", err)
	}

	for _, p := range all {
		if p.ID != id {
			continue
		}
		if !p.Selectable() {
			return entity.Project{}, fmt.Errorf("project %s is %s: %w", id, p.Status, ErrNotSelectable)
		}
		return f.resolve(ctx, p.Clone())
	}
	return entity.Project{}, fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
}

func (f *ProjectFeed) resolve(ctx context.Context, p entity.Project) (entity.Project, error) {
	for i, c := range p.Clips {
		url, err := f.assets.Resolve(ctx, c.Path)
		if err != nil {
			return entity.Project{}, fmt.Errorf("resolve clip %s: %w", c.Path, err)
		}
		p.Clips[i].Path = url
	}
	if p.OutputURL != "" {
		url, err := f.assets.Resolve(ctx, p.OutputURL)
		if err != nil {
			return entity.Project{}, fmt.Errorf("resolve output %s: %w", p.OutputURL, err)
		}
		p.OutputURL = url
	}
	return p, nil
}

type ClipPreview struct {
	Title string `json:"title"`
	Score string `json:"score"`
}

// ProjectCard is a project as drawn in the My Projects grid.
type ProjectCard struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Status        entity.ProjectStatus `json:"status"`
	Type          entity.PipelineType  `json:"type"`
	Selectable    bool                 `json:"selectable"`
	ProgressLabel string               `json:"progress_label,omitempty"`
	Progress      int                  `json:"progress"`
	Previews      []ClipPreview        `json:"previews,omitempty"`
	MoreClips     string               `json:"more_clips,omitempty"`
	ErrorBanner   string               `json:"error_banner,omitempty"`
}

const previewClips = 2

func Card(p entity.Project) ProjectCard {
	card := ProjectCard{
		ID:         p.ID,
		Title:      p.Title,
		Status:     p.Status,
		Type:       p.Type,
		Selectable: p.Selectable(),
		Progress:   p.ProcessingProgress,
	}

	switch p.Status {
	case entity.ProjectStatusProcessing:
		card.ProgressLabel = "Processing"
		if p.ProcessingProgress == 0 {
			card.ProgressLabel = pendingProgressText
		}
	case entity.ProjectStatusCompleted:
		for i, c := range p.Clips {
			if i == previewClips {
				break
			}
			card.Previews = append(card.Previews, ClipPreview{Title: c.DisplayTitle(), Score: Score(c.Confidence)})
		}
		if n := len(p.Clips) - previewClips; n > 0 {
			card.MoreClips = fmt.Sprintf("+%d more clips", n)
		}
	case entity.ProjectStatusFailed:
		card.ErrorBanner = "Processing failed"
	}
	return card
}

// Score renders a clip confidence as a whole percentage.
func Score(confidence float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(confidence*100)))
}

func Cards(projects []entity.Project) []ProjectCard {
	out := make([]ProjectCard, len(projects))
	for i, p := range projects {
		out[i] = Card(p)
	}
	return out
}
