package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"wanderplan/internal/metrics"
	"wanderplan/internal/tripplan"
)

// ErrUnexpectedShape is returned when a photo-bearing container in the plan
// has the wrong JSON type. No lookups are started in that case.
var ErrUnexpectedShape = errors.New("trip plan has an unexpected shape")

// Entity fields read and written by the enricher.
const (
	FieldHotelPhoto      = "photoUrl"
	FieldAttractionImage = "imageUrl"
	FieldMealImage       = "imageUrl"
	FieldActivityImage   = "locationImage"
)

// workItem is one entity whose photo field may be overwritten. Each entity
// map belongs to exactly one item.
type workItem struct {
	entity map[string]any
	name   string
	field  string
}

// Enricher fills photo fields of a plan with URLs from a Lookup.
type Enricher struct {
	lookup Lookup
	logger *zap.Logger
}

// NewEnricher returns an Enricher. A nil logger disables logging.
func NewEnricher(lookup Lookup, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{lookup: lookup, logger: logger}
}

// Enrich looks up a photo for every hotel, attraction, meal restaurant and
// activity location in plan, all concurrently, and waits for every lookup to
// finish. A failed lookup or NoPhoto leaves that entity untouched; a URL
// overwrites whatever the field held. Lookup failures are never returned.
func (e *Enricher) Enrich(ctx context.Context, plan tripplan.TripPlan, destination string) error {
	items, err := collect(plan)
	if err != nil {
		return err
	}

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(len(items))
	for _, it := range items {
		go func(it workItem) {
			defer wg.Done()
			e.resolve(ctx, it, destination)
		}(it)
	}
	wg.Wait()
	metrics.EnrichDuration.Observe(time.Since(start).Seconds())

	e.logger.Debug("plan enriched",
		zap.Int("lookups", len(items)),
		zap.String("destination", destination),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (e *Enricher) resolve(ctx context.Context, it workItem, destination string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.PhotoLookupCounter.WithLabelValues(metrics.LookupError).Inc()
			e.logger.Error("photo lookup panicked", zap.String("name", it.name), zap.Any("panic", r))
		}
	}()

	url, err := e.lookup.LookupPhoto(ctx, it.name, destination)
	switch {
	case err != nil:
		metrics.PhotoLookupCounter.WithLabelValues(metrics.LookupError).Inc()
		e.logger.Warn("photo lookup failed", zap.String("name", it.name), zap.Error(err))
	case isNoPhoto(url):
		metrics.PhotoLookupCounter.WithLabelValues(metrics.LookupNone).Inc()
	default:
		metrics.PhotoLookupCounter.WithLabelValues(metrics.LookupFound).Inc()
		it.entity[it.field] = url
	}
}

// collect walks the plan and returns one work item per photo-bearing entity.
// Absent lists count as empty; lists or objects of the wrong type are a
// contract violation.
func collect(plan tripplan.TripPlan) ([]workItem, error) {
	var items []workItem

	accommodation, err := asObject(plan[tripplan.KeyAccommodation], tripplan.KeyAccommodation)
	if err != nil {
		return nil, err
	}
	hotels, err := asList(accommodation["hotels"], "accommodation.hotels")
	if err != nil {
		return nil, err
	}
	items = appendItems(items, hotels, "name", FieldHotelPhoto, false)

	attractions, err := asList(plan[tripplan.KeyAttractions], tripplan.KeyAttractions)
	if err != nil {
		return nil, err
	}
	items = appendItems(items, attractions, "name", FieldAttractionImage, false)

	days, err := asList(plan[tripplan.KeyDailyPlan], tripplan.KeyDailyPlan)
	if err != nil {
		return nil, err
	}
	for i, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			continue
		}
		meals, err := asList(day["meals"], fmt.Sprintf("dailyPlan[%d].meals", i))
		if err != nil {
			return nil, err
		}
		items = appendItems(items, meals, "restaurant", FieldMealImage, false)

		activities, err := asList(day["activities"], fmt.Sprintf("dailyPlan[%d].activities", i))
		if err != nil {
			return nil, err
		}
		items = appendItems(items, activities, "location", FieldActivityImage, true)
	}
	return items, nil
}

func appendItems(items []workItem, entities []any, nameKey, field string, skipNA bool) []workItem {
	for _, raw := range entities {
		entity, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entity[nameKey].(string)
		name = strings.TrimSpace(name)
		if name == "" || (skipNA && strings.EqualFold(name, "N/A")) {
			continue
		}
		items = append(items, workItem{entity: entity, name: name, field: field})
	}
	return items
}

func asObject(v any, path string) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, want object", ErrUnexpectedShape, path, v)
	}
}

func asList(v any, path string) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, want array", ErrUnexpectedShape, path, v)
	}
}
