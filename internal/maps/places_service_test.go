package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"wanderplan/internal/photos"
)

const (
	testKey      = "AIzaTestKey"
	imageURL     = "https://lh3.googleusercontent.com/places/ANXAkqE-photo=s640"
	textSearch   = "/maps/api/place/textsearch/json"
	placePhoto   = "/maps/api/place/photo"
	belemResults = `{"status": "OK", "results": [
		{"name": "No Photo Cafe", "photos": []},
		{"name": "Belem Tower", "photos": [{"photo_reference": "ref-123", "height": 100, "width": 100}]}
	]}`
)

type placesStub struct {
	search      string
	photo       http.HandlerFunc
	queries     []string
	photoParams []url.Values
}

func newTestPlaces(t *testing.T, stub *placesStub) *PlacesService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case textSearch:
			stub.queries = append(stub.queries, r.URL.Query().Get("query"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(stub.search))
		case placePhoto:
			stub.photoParams = append(stub.photoParams, r.URL.Query())
			stub.photo(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	svc, err := NewPlacesService(testKey, PlacesOptions{
		MaxWidth:      640,
		Language:      "en",
		PhotoEndpoint: srv.URL + placePhoto,
		ClientOptions: []maps.ClientOption{maps.WithBaseURL(srv.URL)},
	})
	require.NoError(t, err)
	return svc
}

func redirectTo(location string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, location, http.StatusFound)
	}
}

func TestLookupPhotoFound(t *testing.T) {
	stub := &placesStub{search: belemResults, photo: redirectTo(imageURL)}
	svc := newTestPlaces(t, stub)

	got, err := svc.LookupPhoto(context.Background(), "Belem Tower", "Lisbon")
	require.NoError(t, err)
	assert.Equal(t, []string{"Belem Tower, Lisbon"}, stub.queries)
	assert.Equal(t, imageURL, got)

	require.Len(t, stub.photoParams, 1)
	assert.Equal(t, "ref-123", stub.photoParams[0].Get("photo_reference"))
	assert.Equal(t, "640", stub.photoParams[0].Get("maxwidth"))
	assert.Equal(t, testKey, stub.photoParams[0].Get("key"), "the key is only sent server side")
}

func TestLookupPhotoNeverReturnsKey(t *testing.T) {
	tests := []struct {
		name     string
		location string
	}{
		{"image host", imageURL},
		{"redirect echoes key", "https://lh3.googleusercontent.com/p/abc?key=" + testKey + "&w=640"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestPlaces(t, &placesStub{search: belemResults, photo: redirectTo(tt.location)})

			got, err := svc.LookupPhoto(context.Background(), "Belem Tower", "Lisbon")
			require.NoError(t, err)
			assert.NotContains(t, got, testKey)

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.False(t, u.Query().Has("key"))
			assert.True(t, strings.HasPrefix(got, "https://lh3.googleusercontent.com/"))
		})
	}
}

func TestLookupPhotoNoRedirect(t *testing.T) {
	svc := newTestPlaces(t, &placesStub{search: belemResults, photo: func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}})

	_, err := svc.LookupPhoto(context.Background(), "Belem Tower", "Lisbon")
	assert.Error(t, err)
}

func TestLookupPhotoZeroResults(t *testing.T) {
	stub := &placesStub{search: `{"status": "ZERO_RESULTS", "results": []}`}
	svc := newTestPlaces(t, stub)

	got, err := svc.LookupPhoto(context.Background(), "Nowhere", "")
	require.NoError(t, err)
	assert.Equal(t, photos.NoPhoto, got)
	assert.Empty(t, stub.photoParams)
}

func TestLookupPhotoAPIError(t *testing.T) {
	svc := newTestPlaces(t, &placesStub{search: `{"status": "REQUEST_DENIED", "error_message": "bad key"}`})

	_, err := svc.LookupPhoto(context.Background(), "Belem Tower", "Lisbon")
	assert.Error(t, err)
}
