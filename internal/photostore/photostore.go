package photostore

import (
	"context"
	"io"
)

// PhotoStore is durable remote storage for bite photos.
type PhotoStore interface {
	// Create stores r under name and returns the backend's object id.
	Create(ctx context.Context, name, mimeType string, r io.Reader) (id string, err error)
	// Share grants anyone holding the id read access to the object.
	Share(ctx context.Context, id string) error
	// PublicURL is the retrieval link for a shared object.
	PublicURL(id string) string
}
