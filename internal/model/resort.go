package model

import "time"

// Pass types a resort can belong to.
const (
	PassEpic = "Epic"
	PassIkon = "Ikon"
	PassIndy = "Indy"
	PassNone = "None"
)

// Resort represents a ski resort. Optional statistics are pointers so that
// absent values round-trip as JSON null rather than zero.
//
// The geography column `location` is not mapped here: it is derived from
// latitude/longitude by a database trigger (see db.EnsurePostGIS) and only
// ever read through the repository's raw proximity query.
type Resort struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	Name                  string    `json:"name" gorm:"size:255;not null"`
	Slug                  string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	StateProvince         string    `json:"state_province,omitempty" gorm:"size:100;index"`
	Country               string    `json:"country" gorm:"size:3;not null;index"`
	Region                string    `json:"region,omitempty" gorm:"size:100"`
	Latitude              float64   `json:"latitude" gorm:"type:decimal(10,7);not null"`
	Longitude             float64   `json:"longitude" gorm:"type:decimal(11,7);not null"`
	SummitElevationFt     *int      `json:"summit_elevation_ft"`
	BaseElevationFt       *int      `json:"base_elevation_ft"`
	VerticalDropFt        *int      `json:"vertical_drop_ft"`
	TrailCount            *int      `json:"trail_count"`
	LiftCount             *int      `json:"lift_count"`
	SkiableAcreage        *int      `json:"skiable_acreage"`
	AnnualSnowfallInches  *int      `json:"annual_snowfall_inches"`
	BeginnerTrailsPct     *int      `json:"beginner_trails_pct"`
	IntermediateTrailsPct *int      `json:"intermediate_trails_pct"`
	AdvancedTrailsPct     *int      `json:"advanced_trails_pct"`
	ExpertTrailsPct       *int      `json:"expert_trails_pct"`
	NightSkiing           bool      `json:"night_skiing" gorm:"default:false"`
	TerrainParks          bool      `json:"terrain_parks" gorm:"default:false"`
	CrossCountry          bool      `json:"cross_country" gorm:"default:false"`
	Snowmaking            bool      `json:"snowmaking" gorm:"default:false"`
	Website               string    `json:"website,omitempty" gorm:"size:500"`
	Phone                 string    `json:"phone,omitempty" gorm:"size:30"`
	Description           string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL              string    `json:"image_url,omitempty" gorm:"size:500"`
	PassType              string    `json:"pass_type,omitempty" gorm:"size:50;index"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName keeps the table name aligned with the original schema.
func (Resort) TableName() string {
	return "ski_resorts"
}

// ResortWithDistance is a Resort annotated with its distance from a query
// point, as returned by the nearby proximity search.
type ResortWithDistance struct {
	Resort
	DistanceMiles float64 `json:"distance_miles"`
}
