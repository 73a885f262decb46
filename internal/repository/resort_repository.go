package repository

import (
	"context"

	"gorm.io/gorm"

	"blizzint/internal/model"
)

// metersPerMile converts the geography distance (meters) to miles.
const metersPerMile = 1609.34

// ResortFilter carries an already-validated conjunctive filter plus sort and
// paging for the resort listing. Nil pointer fields are not applied. SortBy
// must be a real column name; the service layer enforces the allow-list.
type ResortFilter struct {
	Country         string
	StateProvince   string
	PassType        string
	MinElevation    *int
	MaxElevation    *int
	MinVerticalDrop *int
	MinTrailCount   *int
	NightSkiing     *bool
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

// ResortRepository defines resort persistence operations.
type ResortRepository interface {
	Create(ctx context.Context, resort *model.Resort) error
	Update(ctx context.Context, resort *model.Resort) error
	FindByID(ctx context.Context, id uint) (*model.Resort, error)
	FindBySlug(ctx context.Context, slug string) (*model.Resort, error)
	List(ctx context.Context, f ResortFilter) ([]model.Resort, int64, error)
	SearchByName(ctx context.Context, query string, limit int) ([]model.Resort, error)
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]model.ResortWithDistance, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type resortRepository struct {
	db *gorm.DB
}

// NewResortRepository builds a GORM-backed repository.
func NewResortRepository(db *gorm.DB) ResortRepository {
	return &resortRepository{db: db}
}

func (r *resortRepository) Create(ctx context.Context, resort *model.Resort) error {
	return r.db.WithContext(ctx).Create(resort).Error
}

func (r *resortRepository) Update(ctx context.Context, resort *model.Resort) error {
	return r.db.WithContext(ctx).Save(resort).Error
}

func (r *resortRepository) FindByID(ctx context.Context, id uint) (*model.Resort, error) {
	var resort model.Resort
	if err := r.db.WithContext(ctx).First(&resort, id).Error; err != nil {
		return nil, err
	}
	return &resort, nil
}

func (r *resortRepository) FindBySlug(ctx context.Context, slug string) (*model.Resort, error) {
	var resort model.Resort
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&resort).Error; err != nil {
		return nil, err
	}
	return &resort, nil
}

// List applies the conjunctive filter, sort, and paging, and returns the page
// together with the total row count under the same filter so the pagination
// envelope stays consistent with the result set.
func (r *resortRepository) List(ctx context.Context, f ResortFilter) ([]model.Resort, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Resort{})

	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.StateProvince != "" {
		q = q.Where("state_province = ?", f.StateProvince)
	}
	if f.PassType != "" {
		q = q.Where("pass_type = ?", f.PassType)
	}
	if f.MinElevation != nil {
		q = q.Where("summit_elevation_ft >= ?", *f.MinElevation)
	}
	if f.MaxElevation != nil {
		q = q.Where("summit_elevation_ft <= ?", *f.MaxElevation)
	}
	if f.MinVerticalDrop != nil {
		q = q.Where("vertical_drop_ft >= ?", *f.MinVerticalDrop)
	}
	if f.MinTrailCount != nil {
		q = q.Where("trail_count >= ?", *f.MinTrailCount)
	}
	if f.NightSkiing != nil {
		q = q.Where("night_skiing = ?", *f.NightSkiing)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resorts []model.Resort
	err := q.Order(f.SortBy + " " + f.SortOrder).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&resorts).Error
	if err != nil {
		return nil, 0, err
	}

	return resorts, total, nil
}

// SearchByName performs a case-insensitive substring match on name.
func (r *resortRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.Resort, error) {
	var resorts []model.Resort
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&resorts).Error
	if err != nil {
		return nil, err
	}
	return resorts, nil
}

// FindNearby returns all resorts whose location geography lies within
// radiusMeters of the given point, nearest first, each annotated with its
// distance in miles. The heavy lifting is PostGIS: ST_DWithin rides the GIST
// index on location.
func (r *resortRepository) FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]model.ResortWithDistance, error) {
	var resorts []model.ResortWithDistance
	err := r.db.WithContext(ctx).Raw(`
		SELECT *,
			ST_Distance(
				location,
				ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
			) / ? AS distance_miles
		FROM ski_resorts
		WHERE ST_DWithin(
			location,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
			?
		)
		ORDER BY distance_miles`,
		lng, lat, metersPerMile, lng, lat, radiusMeters,
	).Scan(&resorts).Error
	if err != nil {
		return nil, err
	}
	return resorts, nil
}

// Delete removes a resort and reports how many rows were affected.
func (r *resortRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Resort{}, id)
	return res.RowsAffected, res.Error
}
