package port

import (
	"context"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
)

// ProjectSource yields the catalog shown in My Projects.
type ProjectSource interface {
	Projects(ctx context.Context) ([]entity.Project, error)
}
