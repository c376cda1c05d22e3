// README: Google Places photo lookup (Text Search, first result with a photo).
package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"wanderplan/internal/photos"
)

const photoEndpoint = "https://maps.googleapis.com/maps/api/place/photo"

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client        *maps.Client
	http          *http.Client
	apiKey        string
	photoEndpoint string
	maxWidth      int
	language      string
}

// PlacesOptions tune the photo URLs and search language.
type PlacesOptions struct {
	MaxWidth int
	Language string
	// PhotoEndpoint overrides the Place Photo URL, used by tests.
	PhotoEndpoint string
	// HTTPClient issues Place Photo requests. Its redirect policy is replaced.
	HTTPClient *http.Client
	// ClientOptions are passed to maps.NewClient after the API key.
	ClientOptions []maps.ClientOption
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts PlacesOptions) (*PlacesService, error) {
	clientOpts := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts.ClientOptions...)
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 800
	}
	if opts.PhotoEndpoint == "" {
		opts.PhotoEndpoint = photoEndpoint
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	if opts.HTTPClient != nil {
		cp := *opts.HTTPClient
		httpClient = &cp
	}
	// The photo endpoint answers with a redirect to the image; we want the
	// redirect target, not the bytes.
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &PlacesService{
		client:        client,
		http:          httpClient,
		apiKey:        apiKey,
		photoEndpoint: opts.PhotoEndpoint,
		maxWidth:      opts.MaxWidth,
		language:      opts.Language,
	}, nil
}

// LookupPhoto searches for "name, destination" and returns a photo URL for the
// first result that has one, or photos.NoPhoto. The URL never carries the API
// key, so it is safe to store and hand to browsers.
func (s *PlacesService) LookupPhoto(ctx context.Context, name, destination string) (string, error) {
	query := strings.TrimSpace(name)
	if destination != "" {
		query = fmt.Sprintf("%s, %s", query, destination)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: s.language,
	})
	if err != nil {
		return "", fmt.Errorf("places api error: %w", err)
	}

	for _, result := range resp.Results {
		if len(result.Photos) > 0 && result.Photos[0].PhotoReference != "" {
			return s.resolvePhoto(ctx, result.Photos[0].PhotoReference)
		}
	}
	return photos.NoPhoto, nil
}

// resolvePhoto asks the Place Photo endpoint for ref and returns the image
// location it redirects to.
func (s *PlacesService) resolvePhoto(ctx context.Context, ref string) (string, error) {
	q := url.Values{}
	q.Set("maxwidth", strconv.Itoa(s.maxWidth))
	q.Set("photo_reference", ref)
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.photoEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("place photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("place photo: unexpected status %d", resp.StatusCode)
	}
	loc, err := resp.Location()
	if err != nil {
		if errors.Is(err, http.ErrNoLocation) {
			return "", errors.New("place photo: redirect without location")
		}
		return "", fmt.Errorf("place photo: %w", err)
	}

	query := loc.Query()
	if query.Has("key") {
		query.Del("key")
		loc.RawQuery = query.Encode()
	}
	return loc.String(), nil
}
