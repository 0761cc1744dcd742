package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
	"gorm.io/gorm"
)

// ZoneModel is the GORM model for the zones table. School zones and hazmat
// restrictions share the table, discriminated by kind.
type ZoneModel struct {
	ID                string          `gorm:"primaryKey;size:64"`
	Kind              string          `gorm:"not null;size:20;index"`
	Name              string          `gorm:"not null;size:200"`
	Lat               float64         `gorm:"not null;index"`
	Lng               float64         `gorm:"not null;index"`
	RadiusMeters      float64         `gorm:"not null"`
	OperatingHours    string          `gorm:"size:50"`
	RestrictedClasses json.RawMessage `gorm:"type:jsonb"`
	MaxWeightKg       float64         `gorm:""`
	Description       string          `gorm:"size:500"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ZoneModel) TableName() string {
	return "zones"
}

// boundsMarginDegrees pads bounds queries so zones whose center sits just
// outside the box but whose radius reaches into it are still returned.
const boundsMarginDegrees = 0.02

// GormZoneLookup implements zone.Lookup over the zones table for one zone
// kind.
type GormZoneLookup struct {
	db   *gorm.DB
	kind zone.Kind
}

// NewGormZoneLookup creates a lookup for the given zone dataset.
func NewGormZoneLookup(db *gorm.DB, kind zone.Kind) *GormZoneLookup {
	return &GormZoneLookup{db: db, kind: kind}
}

// ZonesWithin returns the zones of this lookup's kind whose centers fall
// inside the (padded) bounds.
func (r *GormZoneLookup) ZonesWithin(ctx context.Context, bounds route.Bounds) ([]zone.Zone, error) {
	padded := bounds.Expand(boundsMarginDegrees)

	var models []ZoneModel
	err := r.db.WithContext(ctx).
		Where("kind = ?", string(r.kind)).
		Where("lat BETWEEN ? AND ?", padded.Southwest.Lat, padded.Northeast.Lat).
		Where("lng BETWEEN ? AND ?", padded.Southwest.Lng, padded.Northeast.Lng).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("query %s zones: %w", r.kind, err)
	}

	zones := make([]zone.Zone, len(models))
	for i, m := range models {
		z, err := toDomainZone(&m)
		if err != nil {
			return nil, err
		}
		zones[i] = z
	}
	return zones, nil
}

// Save upserts one zone, used by the seeding tool.
func Save(ctx context.Context, db *gorm.DB, z zone.Zone) error {
	model, err := toZoneModel(z)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("save zone %s: %w", z.ID, err)
	}
	return nil
}

// --- Conversion helpers ---

func toZoneModel(z zone.Zone) (*ZoneModel, error) {
	var classes json.RawMessage
	if len(z.RestrictedClasses) > 0 {
		data, err := json.Marshal(z.RestrictedClasses)
		if err != nil {
			return nil, fmt.Errorf("marshal restricted classes: %w", err)
		}
		classes = data
	}

	return &ZoneModel{
		ID:                z.ID,
		Kind:              string(z.Kind),
		Name:              z.Name,
		Lat:               z.Center.Lat,
		Lng:               z.Center.Lng,
		RadiusMeters:      z.RadiusMeters,
		OperatingHours:    z.OperatingHours,
		RestrictedClasses: classes,
		MaxWeightKg:       z.MaxWeightKg,
		Description:       z.Description,
	}, nil
}

func toDomainZone(m *ZoneModel) (zone.Zone, error) {
	var classes []string
	if len(m.RestrictedClasses) > 0 {
		if err := json.Unmarshal(m.RestrictedClasses, &classes); err != nil {
			return zone.Zone{}, fmt.Errorf("unmarshal restricted classes for %s: %w", m.ID, err)
		}
	}

	return zone.Zone{
		ID:                m.ID,
		Kind:              zone.Kind(m.Kind),
		Name:              m.Name,
		Center:            route.LatLng{Lat: m.Lat, Lng: m.Lng},
		RadiusMeters:      m.RadiusMeters,
		OperatingHours:    m.OperatingHours,
		RestrictedClasses: classes,
		MaxWeightKg:       m.MaxWeightKg,
		Description:       m.Description,
	}, nil
}
