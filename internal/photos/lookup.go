// README: Photo lookup contract used by the enricher, with a redis-backed cache in cache.go.
package photos

import "context"

// NoPhoto is returned by a Lookup when nothing usable was found.
// It is a value, not an error; the enricher leaves the field unchanged.
const NoPhoto = "/placeholder.svg"

// Lookup resolves a place name to a photo URL. destination narrows the
// search to the trip area.
type Lookup interface {
	LookupPhoto(ctx context.Context, name, destination string) (string, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, name, destination string) (string, error)

func (f LookupFunc) LookupPhoto(ctx context.Context, name, destination string) (string, error) {
	return f(ctx, name, destination)
}

func isNoPhoto(url string) bool {
	return url == "" || url == NoPhoto
}
