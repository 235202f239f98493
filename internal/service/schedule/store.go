package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stripboard/internal/model/schedule"
	"stripboard/internal/pkg/cache"
	"stripboard/internal/pkg/id"
	repository "stripboard/internal/repository/schedule"
)

// Service owns a user's scene collection: load, add, delete, and the
// derived index built from it. All mutations are read-modify-write
// against the single schedule document and are all-or-nothing: a
// validation or persistence failure leaves the stored collection
// untouched.
type Service struct {
	repo  repository.ScheduleRepository
	cache *cache.RedisCache // optional; nil: index is rebuilt on every query
}

// NewService creates a schedule service.
func NewService(repo repository.ScheduleRepository, cache *cache.RedisCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Load returns the user's scenes, sorted ascending by scene number.
// A user with no stored schedule gets an empty collection.
func (s *Service) Load(ctx context.Context, userID string) ([]schedule.Scene, error) {
	return s.repo.Load(ctx, userID)
}

// Add validates the draft, assigns an id and creation timestamp,
// re-sorts and persists the full collection, and returns it. The sort
// is stable, so scenes sharing a scene number keep insertion order.
func (s *Service) Add(ctx context.Context, userID string, draft schedule.SceneDraft) ([]schedule.Scene, error) {
	draft.Location = strings.TrimSpace(draft.Location)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Vehicles = strings.TrimSpace(draft.Vehicles)
	draft.Cast = trimCast(draft.Cast)

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	scenes, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	scene := schedule.Scene{
		ID:          id.New(),
		SceneNo:     draft.SceneNo,
		Location:    draft.Location,
		DayNight:    draft.DayNight,
		PageCount:   draft.NormalizedPageCount(),
		Description: draft.Description,
		Vehicles:    draft.Vehicles,
		Cast:        draft.Cast,
		CreatedAt:   time.Now(),
	}

	scenes = append(scenes, scene)
	schedule.SortScenes(scenes)

	if err := s.repo.Replace(ctx, userID, scenes); err != nil {
		return nil, err
	}
	s.invalidateIndex(ctx, userID)

	return scenes, nil
}

// Delete removes the scene with the given id. An unknown id is a no-op,
// not an error; nothing is persisted in that case.
func (s *Service) Delete(ctx context.Context, userID, sceneID string) ([]schedule.Scene, error) {
	scenes, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := scenes[:0:0]
	for _, scene := range scenes {
		if scene.ID != sceneID {
			kept = append(kept, scene)
		}
	}
	if len(kept) == len(scenes) {
		return scenes, nil
	}

	if err := s.repo.Replace(ctx, userID, kept); err != nil {
		return nil, err
	}
	s.invalidateIndex(ctx, userID)

	return kept, nil
}

// Index returns the derived index for the user's collection, serving
// from cache when possible. The cache is invalidated on every mutation,
// so a hit is always consistent with the stored collection.
func (s *Service) Index(ctx context.Context, userID string) (Index, error) {
	if s.cache != nil {
		var cached Index
		if err := s.cache.Get(ctx, cache.IndexCacheKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	scenes, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Index{}, err
	}
	idx := BuildIndex(scenes)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.IndexCacheKey(userID), idx, cache.IndexCacheTTL); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("failed to cache derived index")
		}
	}

	return idx, nil
}

// Stats are the collection counters shown on the dashboard.
type Stats struct {
	TotalScenes    int `json:"total_scenes"`
	TotalLocations int `json:"total_locations"`
}

// Stats returns scene and distinct-location counts.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	scenes, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	idx := BuildIndex(scenes)
	return Stats{
		TotalScenes:    len(scenes),
		TotalLocations: len(idx.Locations),
	}, nil
}

func (s *Service) invalidateIndex(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.IndexCacheKey(userID)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate derived index cache")
	}
}

func trimCast(cast []string) []string {
	if len(cast) == 0 {
		return cast
	}
	trimmed := make([]string, 0, len(cast))
	for _, name := range cast {
		name = strings.TrimSpace(name)
		if name != "" {
			trimmed = append(trimmed, name)
		}
	}
	return trimmed
}
