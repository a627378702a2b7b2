package service

import (
	"context"
	"encoding/json"

	"evacsim/pkg/apperror"
	"evacsim/pkg/cache"
	"evacsim/pkg/domain"
	"evacsim/pkg/logger"
	"evacsim/pkg/metrics"
	"evacsim/pkg/telemetry"
)

// GeoJSON структуры для выдачи дорожной сети фронтенду

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   LineString     `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// Segments возвращает дорожную сеть в формате GeoJSON FeatureCollection.
// Ответ тяжёлый, поэтому кэшируется целиком в сериализованном виде.
func (s *EvacuationService) Segments(ctx context.Context) (*FeatureCollection, error) {
	ctx, span := telemetry.StartSpan(ctx, "EvacuationService.Segments")
	defer span.End()

	key := cache.BuildSegmentsKey("")

	if data, err := s.cache.Get(ctx, key); err == nil {
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err == nil {
			metrics.Get().RecordCacheHit("segments")
			return &fc, nil
		}
		// Повреждённая запись — удаляем и пересчитываем
		_ = s.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
	} else if err != cache.ErrKeyNotFound {
		logger.Warn("segments cache read failed", "error", err)
	}
	metrics.Get().RecordCacheMiss("segments")

	segments, err := s.repo.ListSegments(ctx)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, apperror.Wrap(err, apperror.CodeDatabaseError, "failed to load road network")
	}

	fc := buildFeatureCollection(segments)

	if data, err := json.Marshal(fc); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cfg.SegmentsTTL); err != nil {
			logger.Warn("segments cache write failed", "error", err)
		}
	}

	return fc, nil
}

func buildFeatureCollection(segments []domain.RoadSegment) *FeatureCollection {
	features := make([]Feature, 0, len(segments))

	for i := range segments {
		seg := &segments[i]
		if len(seg.Geometry) == 0 {
			continue
		}

		coords := make([][2]float64, len(seg.Geometry))
		for j, c := range seg.Geometry {
			coords[j] = [2]float64{c.Lon, c.Lat}
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: LineString{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: map[string]any{
				"id":            seg.ID,
				"road_name":     seg.RoadName,
				"capacity_vph":  seg.EffectiveCapacity(),
				"lanes":         seg.Lanes,
				"speed_limit":   seg.SpeedLimit,
				"is_interstate": seg.IsInterstate,
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
