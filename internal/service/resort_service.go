package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"gorm.io/gorm"

	"blizzint/internal/cache"
	apperrors "blizzint/internal/errors"
	"blizzint/internal/model"
	"blizzint/internal/repository"
)

const (
	defaultPage        = 1
	defaultLimit       = 100
	searchResultCap    = 50
	defaultRadiusMiles = 50
	metersPerMile      = 1609.34

	resortCacheTTL = 5 * time.Minute
)

// validSortColumns is the allow-list for the listing sort. Anything else
// silently falls back to name.
var validSortColumns = map[string]bool{
	"name":                true,
	"summit_elevation_ft": true,
	"vertical_drop_ft":    true,
	"trail_count":         true,
	"skiable_acreage":     true,
	"created_at":          true,
}

// ListResortsParams is the untyped filter bag from the query string, already
// bound but not yet validated. Pointer fields distinguish absent from zero.
type ListResortsParams struct {
	Country         string `query:"country"`
	StateProvince   string `query:"state_province"`
	PassType        string `query:"pass_type"`
	MinElevation    *int   `query:"min_elevation"`
	MaxElevation    *int   `query:"max_elevation"`
	MinVerticalDrop *int   `query:"min_vertical_drop"`
	MinTrailCount   *int   `query:"min_trail_count"`
	NightSkiing     *bool  `query:"night_skiing"`
	SortBy          string `query:"sort_by"`
	SortOrder       string `query:"sort_order"`
	Page            int    `query:"page"`
	Limit           int    `query:"limit"`
}

// Pagination describes the page of a filtered listing. Total counts rows
// matching the active filters, not the whole table.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ResortPage is a page of resorts with its pagination envelope.
type ResortPage struct {
	Resorts    []model.Resort `json:"resorts"`
	Pagination Pagination     `json:"pagination"`
}

// ResortService exposes resort query and management operations.
type ResortService interface {
	ListResorts(ctx context.Context, params ListResortsParams) (*ResortPage, error)
	SearchResorts(ctx context.Context, query string) ([]model.Resort, error)
	NearbyResorts(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ResortWithDistance, error)
	GetResortByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Resort, error)
	CreateResort(ctx context.Context, resort *model.Resort) (*model.Resort, error)
	UpdateResort(ctx context.Context, id uint, input *model.Resort) (*model.Resort, error)
	DeleteResort(ctx context.Context, id uint) error
}

type resortService struct {
	repo  repository.ResortRepository
	cache *cache.Client
}

// NewResortService builds a ResortService with repository and cache.
func NewResortService(repo repository.ResortRepository, cache *cache.Client) ResortService {
	return &resortService{repo: repo, cache: cache}
}

// buildFilter validates and bounds the raw parameter bag.
func buildFilter(params ListResortsParams) repository.ResortFilter {
	sortBy := params.SortBy
	if !validSortColumns[sortBy] {
		sortBy = "name"
	}
	sortOrder := "asc"
	if params.SortOrder == "desc" {
		sortOrder = "desc"
	}
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	return repository.ResortFilter{
		Country:         params.Country,
		StateProvince:   params.StateProvince,
		PassType:        params.PassType,
		MinElevation:    params.MinElevation,
		MaxElevation:    params.MaxElevation,
		MinVerticalDrop: params.MinVerticalDrop,
		MinTrailCount:   params.MinTrailCount,
		NightSkiing:     params.NightSkiing,
		SortBy:          sortBy,
		SortOrder:       sortOrder,
		Limit:           limit,
		Offset:          (page - 1) * limit,
	}
}

// ListResorts applies the conjunctive filter and returns one page plus the
// pagination envelope computed from the filtered count.
func (s *resortService) ListResorts(ctx context.Context, params ListResortsParams) (*ResortPage, error) {
	f := buildFilter(params)

	resorts, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list resorts: %w", err)
	}
	if resorts == nil {
		resorts = []model.Resort{}
	}

	return &ResortPage{
		Resorts: resorts,
		Pagination: Pagination{
			Page:  f.Offset/f.Limit + 1,
			Limit: f.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}

// SearchResorts matches the query as a case-insensitive substring of name,
// sorted by name and capped at 50 results.
func (s *resortService) SearchResorts(ctx context.Context, query string) ([]model.Resort, error) {
	resorts, err := s.repo.SearchByName(ctx, query, searchResultCap)
	if err != nil {
		return nil, fmt.Errorf("search resorts: %w", err)
	}
	if resorts == nil {
		resorts = []model.Resort{}
	}
	return resorts, nil
}

// NearbyResorts returns resorts within radiusMiles of the point, nearest
// first. A non-positive radius falls back to 50 miles.
func (s *resortService) NearbyResorts(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ResortWithDistance, error) {
	if radiusMiles <= 0 {
		radiusMiles = defaultRadiusMiles
	}

	resorts, err := s.repo.FindNearby(ctx, lat, lng, radiusMiles*metersPerMile)
	if err != nil {
		return nil, fmt.Errorf("nearby resorts: %w", err)
	}
	if resorts == nil {
		resorts = []model.ResortWithDistance{}
	}
	return resorts, nil
}

func resortCacheKey(idOrSlug string) string {
	return "resort:" + idOrSlug
}

// GetResortByIDOrSlug looks up by numeric id when the identifier parses as a
// number, by slug otherwise. Lookups are cached read-through.
func (s *resortService) GetResortByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Resort, error) {
	if data, _ := s.cache.Get(ctx, resortCacheKey(idOrSlug)); data != nil {
		var cached model.Resort
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var resort *model.Resort
	var err error
	if id, convErr := strconv.ParseUint(idOrSlug, 10, 32); convErr == nil {
		resort, err = s.repo.FindByID(ctx, uint(id))
	} else {
		resort, err = s.repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrResortNotFound
		}
		return nil, fmt.Errorf("get resort: %w", err)
	}

	if payload, err := json.Marshal(resort); err == nil {
		_ = s.cache.Set(ctx, resortCacheKey(idOrSlug), payload, resortCacheTTL)
	}
	return resort, nil
}

// CreateResort derives the slug from the name and persists the record.
func (s *resortService) CreateResort(ctx context.Context, resort *model.Resort) (*model.Resort, error) {
	resort.Slug = Slugify(resort.Name)

	if err := s.repo.Create(ctx, resort); err != nil {
		return nil, err
	}
	return resort, nil
}

// UpdateResort replaces the stored fields with the supplied ones. The slug is
// regenerated whenever the name changes.
func (s *resortService) UpdateResort(ctx context.Context, id uint, input *model.Resort) (*model.Resort, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrResortNotFound
		}
		return nil, fmt.Errorf("find resort: %w", err)
	}

	oldSlug := existing.Slug

	input.ID = existing.ID
	input.CreatedAt = existing.CreatedAt
	input.Slug = existing.Slug
	if input.Name != existing.Name {
		input.Slug = Slugify(input.Name)
	}

	if err := s.repo.Update(ctx, input); err != nil {
		return nil, err
	}

	s.invalidate(ctx, existing.ID, oldSlug, input.Slug)
	return input, nil
}

// DeleteResort removes the resort, reporting NotFound when no row matched.
func (s *resortService) DeleteResort(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResortNotFound
		}
		return fmt.Errorf("find resort: %w", err)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete resort: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrResortNotFound
	}

	s.invalidate(ctx, id, existing.Slug)
	return nil
}

// invalidate drops cached lookups for both identifier forms.
func (s *resortService) invalidate(ctx context.Context, id uint, slugs ...string) {
	keys := []string{resortCacheKey(strconv.FormatUint(uint64(id), 10))}
	for _, slug := range slugs {
		keys = append(keys, resortCacheKey(slug))
	}
	_ = s.cache.Delete(ctx, keys...)
}
