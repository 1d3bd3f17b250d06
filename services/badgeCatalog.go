package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/PrayerWall/models"
)

// BadgeCatalog is read-only badge reference data keyed by criterion.
type BadgeCatalog interface {
	Lookup(criteria string) (models.Badge, bool)
	All() []models.Badge
}

// StaticBadgeCatalog is an in-memory BadgeCatalog. The first definition of a criterion wins.
type StaticBadgeCatalog struct {
	badges     []models.Badge
	byCriteria map[string]models.Badge
}

// NewStaticBadgeCatalog indexes badges by criterion, keeping their order.
func NewStaticBadgeCatalog(badges []models.Badge) *StaticBadgeCatalog {
	catalog := &StaticBadgeCatalog{
		badges:     make([]models.Badge, 0, len(badges)),
		byCriteria: make(map[string]models.Badge, len(badges)),
	}
	for _, b := range badges {
		if _, dup := catalog.byCriteria[b.Criteria]; dup {
			continue
		}
		catalog.byCriteria[b.Criteria] = b
		catalog.badges = append(catalog.badges, b)
	}
	return catalog
}

// Lookup returns the definition for a criterion key.
func (c *StaticBadgeCatalog) Lookup(criteria string) (models.Badge, bool) {
	b, ok := c.byCriteria[criteria]
	return b, ok
}

// All returns a copy of every definition.
func (c *StaticBadgeCatalog) All() []models.Badge {
	out := make([]models.Badge, len(c.badges))
	copy(out, c.badges)
	return out
}

// DefaultBadgeCatalog covers every criterion key the badge evaluator can produce.
func DefaultBadgeCatalog() *StaticBadgeCatalog {
	var badges []models.Badge

	prayerNames := map[int]string{
		1: "First Prayer", 10: "Faithful Ten", 25: "Steadfast", 50: "Devoted",
		100: "Prayer Warrior", 250: "Intercessor", 500: "Watchman", 1000: "Pillar of Prayer",
		5000: "Unceasing",
	}
	for _, n := range PrayerMilestones {
		badges = append(badges, models.Badge{
			Name:        prayerNames[n],
			Description: fmt.Sprintf("Logged %d prayers", n),
			Icon_Url:    "/badges/" + PrayerMilestoneCriteria(n) + ".svg",
			Criteria:    PrayerMilestoneCriteria(n),
		})
	}

	requestNames := map[int]string{
		1: "First Request", 5: "Open Heart", 10: "Trusting", 25: "Seeker", 50: "Persistent",
		100: "Bold Asker",
	}
	for _, n := range RequestMilestones {
		badges = append(badges, models.Badge{
			Name:        requestNames[n],
			Description: fmt.Sprintf("Shared %d prayer requests", n),
			Icon_Url:    "/badges/" + RequestMilestoneCriteria(n) + ".svg",
			Criteria:    RequestMilestoneCriteria(n),
		})
	}

	badges = append(badges,
		models.Badge{Name: "Morning Light", Description: "Prayed between 5am and 9am", Icon_Url: "/badges/morning_prayer.svg", Criteria: CriteriaMorningPrayer},
		models.Badge{Name: "Night Watch", Description: "Prayed between 11pm and 3am", Icon_Url: "/badges/night_prayer.svg", Criteria: CriteriaNightPrayer},
		models.Badge{Name: "Sabbath Rest", Description: "Prayed on a weekend", Icon_Url: "/badges/weekend_prayer.svg", Criteria: CriteriaWeekendPrayer},
	)

	for _, days := range StreakThresholds {
		badges = append(badges, models.Badge{
			Name:        fmt.Sprintf("%d Day Streak", days),
			Description: fmt.Sprintf("Prayed %d days in a row", days),
			Icon_Url:    "/badges/" + StreakCriteria(days) + ".svg",
			Criteria:    StreakCriteria(days),
		})
	}

	return NewStaticBadgeCatalog(badges)
}

type badgeLister interface {
	GetBadges(ctx context.Context) ([]models.Badge, error)
}

type badgeSeeder interface {
	badgeLister
	SeedBadges(ctx context.Context, badges []models.Badge) (int64, error)
}

// LoadBadgeCatalog reads the badges table. It falls back to the default catalog only
// when the table is unreachable; an empty table yields an empty catalog so nothing is
// reported as awarded that the store could not persist.
func LoadBadgeCatalog(ctx context.Context, store badgeLister) BadgeCatalog {
	badges, err := store.GetBadges(ctx)
	if err != nil {
		log.Printf("Failed to load badge catalog, using defaults: %v", err)
		return DefaultBadgeCatalog()
	}
	if len(badges) == 0 {
		log.Println("WARNING: badges table is empty, no badges will be awarded")
	}

	sort.SliceStable(badges, func(i, j int) bool { return badges[i].Badge_ID < badges[j].Badge_ID })
	return NewStaticBadgeCatalog(badges)
}

// SeedBadgeCatalog makes sure every default badge has a row, then loads the catalog
// from the table so definitions carry their database ids.
func SeedBadgeCatalog(ctx context.Context, store badgeSeeder) BadgeCatalog {
	inserted, err := store.SeedBadges(ctx, DefaultBadgeCatalog().All())
	if err != nil {
		log.Printf("Failed to seed badge catalog: %v", err)
	} else if inserted > 0 {
		log.Printf("Seeded %d badge definitions", inserted)
	}
	return LoadBadgeCatalog(ctx, store)
}
