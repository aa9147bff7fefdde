package memory

import (
	"time"

	"github.com/courtside/hooprun/internal/domain/court"
	"github.com/courtside/hooprun/internal/domain/product"
	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/domain/run"
)

const (
	CourtIDRucker    = "nyc-rucker-park"
	CourtIDWest4th   = "nyc-west-4th"
	CourtIDVenice    = "la-venice-beach"
	ProfileIDJordan  = "prof-jordan-banks"
	ProfileIDAaliyah = "prof-aaliyah-cole"
	ProfileIDMarcus  = "prof-marcus-reed"
)

func SeedCourts() []court.Court {
	return []court.Court{
		{ID: CourtIDRucker, Name: "Rucker Park", Address: "1 Rucker Playground", City: "New York", Latitude: 40.8296, Longitude: -73.9362, Indoor: false, HoopCount: 2},
		{ID: CourtIDWest4th, Name: "West 4th Street Courts", Address: "267 6th Ave", City: "New York", Latitude: 40.7312, Longitude: -74.0010, Indoor: false, HoopCount: 2},
		{ID: CourtIDVenice, Name: "Venice Beach Courts", Address: "1800 Ocean Front Walk", City: "Los Angeles", Latitude: 33.9850, Longitude: -118.4695, Indoor: false, HoopCount: 4},
	}
}

func SeedProfiles() []profile.Profile {
	return []profile.Profile{
		{ID: ProfileIDJordan, Username: "jbanks23", DisplayName: "Jordan Banks", Position: "Guard", City: "New York"},
		{ID: ProfileIDAaliyah, Username: "acole", DisplayName: "Aaliyah Cole", Position: "Forward", City: "New York"},
		{ID: ProfileIDMarcus, Username: "mreed", DisplayName: "Marcus Reed", Position: "Center", City: "Los Angeles"},
	}
}

func SeedRuns(now time.Time) []run.Run {
	return []run.Run{
		{
			ID:            "run-rucker-sat",
			HostProfileID: ProfileIDJordan,
			CourtID:       CourtIDRucker,
			StartsAt:      now.Add(48 * time.Hour),
			EndsAt:        now.Add(50 * time.Hour),
			PlayerLimit:   10,
			SkillLevel:    "Intermediate",
			TeamType:      "5v5",
			Status:        run.StatusActive,
			CreatedAt:     now,
		},
		{
			ID:            "run-west4th-paid",
			HostProfileID: ProfileIDAaliyah,
			CourtID:       CourtIDWest4th,
			StartsAt:      now.Add(72 * time.Hour),
			EndsAt:        now.Add(74 * time.Hour),
			PlayerLimit:   8,
			SkillLevel:    "Advanced",
			TeamType:      "4v4",
			CostCents:     1000,
			Status:        run.StatusActive,
			CreatedAt:     now,
		},
	}
}

func SeedProducts() []product.Product {
	return []product.Product{
		{ID: "prod-ball-official", Name: "Official Game Ball", Category: "Gear", PriceCents: 6499, InStock: true},
		{ID: "prod-tee-classic", Name: "Courtside Classic Tee", Category: "Merch", PriceCents: 2999, InStock: true},
		{ID: "prod-sleeve-elite", Name: "Elite Shooting Sleeve", Category: "Gear", PriceCents: 1899, InStock: false},
	}
}
