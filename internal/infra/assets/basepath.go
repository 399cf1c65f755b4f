package assets

import (
	"context"
	"strings"
)

// BasePathResolver prefixes demo asset paths with the deployment base path
// (e.g. "/demo_heroxshorts2" for a GitHub Pages build, "" locally).
type BasePathResolver struct {
	basePath string
}

func NewBasePathResolver(basePath string) *BasePathResolver {
	return &BasePathResolver{basePath: strings.TrimRight(basePath, "/")}
}

func (r *BasePathResolver) Resolve(_ context.Context, path string) (string, error) {
	return r.basePath + "/" + ObjectKey(path), nil
}

// ObjectKey normalises "./projects/x.mp4" and "/projects/x.mp4" to "projects/x.mp4".
func ObjectKey(path string) string {
	path = strings.TrimPrefix(path, "./")
	return strings.TrimLeft(path, "/")
}
