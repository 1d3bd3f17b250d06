package services

import (
	"context"
	"fmt"

	"github.com/PrayerWall/models"
	"github.com/doug-martin/goqu/v9"
)

// Store is the goqu-backed persistence used by the engagement engine.
type Store struct {
	db *goqu.Database
}

func NewStore(db *goqu.Database) *Store {
	return &Store{db: db}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceUnavailable, op, err)
}

func (s *Store) GetPrayersByUserID(ctx context.Context, userID int) ([]models.Prayer, error) {
	var prayers []models.Prayer
	err := s.db.From("prayers").
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("prayed_at").Desc()).
		ScanStructsContext(ctx, &prayers)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("list prayers for user %d", userID), err)
	}
	return prayers, nil
}

func (s *Store) GetPrayerRequestsByRequesterID(ctx context.Context, userID int) ([]models.PrayerRequest, error) {
	var requests []models.PrayerRequest
	err := s.db.From("prayer_requests").
		Where(goqu.C("requester_id").Eq(userID)).
		ScanStructsContext(ctx, &requests)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("list prayer requests for user %d", userID), err)
	}
	return requests, nil
}

// GetPrayerRequestByID returns nil without an error when the request does not exist.
func (s *Store) GetPrayerRequestByID(ctx context.Context, id int) (*models.PrayerRequest, error) {
	var request models.PrayerRequest
	found, err := s.db.From("prayer_requests").
		Where(goqu.C("id").Eq(id)).
		ScanStructContext(ctx, &request)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("get prayer request %d", id), err)
	}
	if !found {
		return nil, nil
	}
	return &request, nil
}

// GetUserByID returns nil without an error when the user does not exist.
func (s *Store) GetUserByID(ctx context.Context, id int) (*models.UserProfile, error) {
	var user models.UserProfile
	found, err := s.db.From("users").
		Where(goqu.C("id").Eq(id)).
		ScanStructContext(ctx, &user)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("get user %d", id), err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// AwardBadge records the badge for the user at most once. Repeats and unknown
// criteria insert nothing and are not errors.
func (s *Store) AwardBadge(ctx context.Context, userID int, criteria string) error {
	insert := s.db.Insert("user_badges").
		Cols("user_id", "badge_id").
		FromQuery(
			s.db.From("badges").
				Select(goqu.V(userID), goqu.C("id")).
				Where(goqu.C("criteria").Eq(criteria)),
		).
		OnConflict(goqu.DoNothing())

	if _, err := insert.Executor().ExecContext(ctx); err != nil {
		return unavailable(fmt.Sprintf("award %s to user %d", criteria, userID), err)
	}
	return nil
}

func (s *Store) HasBadge(ctx context.Context, userID int, criteria string) (bool, error) {
	var count int64
	_, err := s.db.From(goqu.T("user_badges").As("ub")).
		Select(goqu.COUNT("*")).
		Join(goqu.T("badges").As("b"), goqu.On(goqu.I("ub.badge_id").Eq(goqu.I("b.id")))).
		Where(
			goqu.I("ub.user_id").Eq(userID),
			goqu.I("b.criteria").Eq(criteria),
		).
		ScanValContext(ctx, &count)
	if err != nil {
		return false, unavailable(fmt.Sprintf("check %s for user %d", criteria, userID), err)
	}
	return count > 0, nil
}

func (s *Store) GetBadgesByUserID(ctx context.Context, userID int) ([]models.AwardedBadge, error) {
	var badges []models.AwardedBadge
	err := s.db.From(goqu.T("badges").As("b")).
		Select(
			goqu.I("b.id"),
			goqu.I("b.name"),
			goqu.I("b.description"),
			goqu.I("b.icon_url"),
			goqu.I("b.criteria"),
			goqu.I("ub.awarded_at"),
		).
		Join(goqu.T("user_badges").As("ub"), goqu.On(goqu.I("b.id").Eq(goqu.I("ub.badge_id")))).
		Where(goqu.I("ub.user_id").Eq(userID)).
		Order(goqu.I("ub.awarded_at").Asc()).
		ScanStructsContext(ctx, &badges)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("list badges for user %d", userID), err)
	}
	return badges, nil
}

// GetBadges lists the badge definitions in id order.
func (s *Store) GetBadges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.db.From("badges").Order(goqu.C("id").Asc()).ScanStructsContext(ctx, &badges)
	if err != nil {
		return nil, unavailable("list badges", err)
	}
	return badges, nil
}

// SeedBadges inserts badge definitions whose criteria are not in the badges table yet.
// Existing rows are left untouched so edited names and icons survive restarts.
func (s *Store) SeedBadges(ctx context.Context, badges []models.Badge) (int64, error) {
	if len(badges) == 0 {
		return 0, nil
	}
	insert := s.db.Insert("badges").
		Rows(badges).
		OnConflict(goqu.DoNothing())

	result, err := insert.Executor().ExecContext(ctx)
	if err != nil {
		return 0, unavailable("seed badges", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, unavailable("seed badges", err)
	}
	return inserted, nil
}

func (s *Store) CreateNotification(ctx context.Context, notification models.Notification) error {
	insert := s.db.Insert("notifications").Rows(notification)
	if _, err := insert.Executor().ExecContext(ctx); err != nil {
		return unavailable(fmt.Sprintf("create notification for user %d", notification.User_ID), err)
	}
	return nil
}

func (s *Store) GetPushTokens(ctx context.Context, userID int) ([]models.PushToken, error) {
	var tokens []models.PushToken
	err := s.db.From("user_push_tokens").
		Where(goqu.C("user_id").Eq(userID)).
		ScanStructsContext(ctx, &tokens)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("list push tokens for user %d", userID), err)
	}
	return tokens, nil
}
