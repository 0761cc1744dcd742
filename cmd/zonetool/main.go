// Command zonetool seeds the zone database with the school-zone and
// hazmat-restriction datasets for the metro service area.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/config"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/database"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/logger"
	"github.com/SafeHaul-Logistics/service-routing/internal/repository"
	"go.uber.org/zap"
)

var seedZones = []zone.Zone{
	{
		ID:             "school-central-elementary",
		Kind:           zone.KindSchool,
		Name:           "Central Elementary School",
		Center:         route.LatLng{Lat: 40.7328, Lng: -74.0060},
		RadiusMeters:   300,
		OperatingHours: "7:30 AM - 4:30 PM",
	},
	{
		ID:             "school-westside-high",
		Kind:           zone.KindSchool,
		Name:           "Westside High School",
		Center:         route.LatLng{Lat: 40.7508, Lng: -73.9960},
		RadiusMeters:   400,
		OperatingHours: "7:30 AM - 4:30 PM",
	},
	{
		ID:                "hazmat-downtown-tunnel",
		Kind:              zone.KindHazmat,
		Name:              "Downtown Tunnel",
		Center:            route.LatLng{Lat: 40.7028, Lng: -74.0160},
		RadiusMeters:      500,
		RestrictedClasses: []string{"3", "8"},
		MaxWeightKg:       20000,
		Description:       "Flammable and corrosive cargo prohibited in the tunnel bore",
	},
	{
		ID:                "hazmat-harbor-bridge",
		Kind:              zone.KindHazmat,
		Name:              "Harbor Bridge",
		Center:            route.LatLng{Lat: 40.7128, Lng: -73.9860},
		RadiusMeters:      400,
		RestrictedClasses: []string{"9"},
		MaxWeightKg:       35000,
		Description:       "Weight-limited span, miscellaneous dangerous goods prohibited",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "zonetool")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&repository.ZoneModel{}); err != nil {
		log.Fatal("failed to migrate zones table", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, z := range seedZones {
		if err := repository.Save(ctx, db, z); err != nil {
			log.Fatal("failed to seed zone",
				zap.String("zone_id", z.ID),
				zap.Error(err),
			)
		}
		log.Info("seeded zone",
			zap.String("zone_id", z.ID),
			zap.String("kind", string(z.Kind)),
		)
	}

	log.Info("zone seeding completed", zap.Int("count", len(seedZones)))
}
