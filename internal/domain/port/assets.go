package port

import "context"

// AssetResolver turns a static demo asset path into a link the client can play.
type AssetResolver interface {
	Resolve(ctx context.Context, path string) (string, error)
}
