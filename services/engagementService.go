package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/PrayerWall/models"
)

type EngagementEvent string

const (
	EventPrayerCreated        EngagementEvent = "prayer_created"
	EventPrayerRequestCreated EngagementEvent = "prayer_request_created"
	EventCommentCreated       EngagementEvent = "comment_created"
)

// EngagementStore is the persistence the engagement engine reads and writes.
type EngagementStore interface {
	GetPrayersByUserID(ctx context.Context, userID int) ([]models.Prayer, error)
	GetPrayerRequestsByRequesterID(ctx context.Context, userID int) ([]models.PrayerRequest, error)
	GetPrayerRequestByID(ctx context.Context, id int) (*models.PrayerRequest, error)
	GetUserByID(ctx context.Context, id int) (*models.UserProfile, error)
	AwardBadge(ctx context.Context, userID int, criteria string) error
}

// Outcome describes what one engagement run did. Failures are collected here
// instead of being returned, so the primary write is never affected by them.
type Outcome struct {
	Event      EngagementEvent
	ActorID    int
	Skipped    bool
	SkipReason string
	Streak     int
	Awarded    []string
	Notified   bool
	Errors     []error
}

func (o Outcome) Failed() bool {
	return len(o.Errors) > 0
}

func (o *Outcome) fail(step string, err error) {
	err = fmt.Errorf("%s: %w", step, err)
	o.Errors = append(o.Errors, err)
	log.Printf("Engagement %s for user %d failed at %v", o.Event, o.ActorID, err)
}

func (o *Outcome) skip(reason string) {
	o.Skipped = true
	o.SkipReason = reason
}

// EngagementService runs streak, badge and notification side effects after a
// prayer, prayer request or comment has been committed.
type EngagementService struct {
	store      EngagementStore
	catalog    BadgeCatalog
	dispatcher *NotificationDispatcher
	now        func() time.Time
}

func NewEngagementService(store EngagementStore, catalog BadgeCatalog, dispatcher *NotificationDispatcher) *EngagementService {
	return &EngagementService{
		store:      store,
		catalog:    catalog,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

var engagementService *EngagementService

// InitEngagementService wires the engine against the store, seeding and loading the
// badge catalog from the database.
func InitEngagementService(store *Store) {
	catalog := SeedBadgeCatalog(context.Background(), store)
	var push PushSender
	if ps := GetPushNotificationService(); ps != nil {
		push = ps
	}
	dispatcher := NewNotificationDispatcher(store, push)
	engagementService = NewEngagementService(store, catalog, dispatcher)
	log.Printf("Engagement service initialized with %d badges", len(catalog.All()))
}

func GetEngagementService() *EngagementService {
	return engagementService
}

// OnPrayerCreated evaluates prayer badges for the actor and notifies the owner of the
// prayed-for request. Anonymous or unknown actors are skipped entirely.
func (s *EngagementService) OnPrayerCreated(ctx context.Context, prayer models.Prayer, actingUserID *int) (outcome Outcome) {
	outcome.Event = EventPrayerCreated
	defer s.finish(&outcome)

	actor, ok := s.resolveActor(ctx, actingUserID, &outcome)
	if !ok {
		return outcome
	}

	prayers, err := s.store.GetPrayersByUserID(ctx, actor.User_ID)
	if err != nil {
		outcome.fail("compute metrics", err)
	} else {
		timestamps := make([]*time.Time, 0, len(prayers))
		for _, p := range prayers {
			timestamps = append(timestamps, p.Prayed_At)
		}
		now := s.now()
		outcome.Streak = CalculateStreak(timestamps, now)

		// Time of day and weekend badges follow the engine clock, never the
		// client-supplied prayed_at.
		criteria := EvaluatePrayerBadges(PrayerActivity{
			PrayerCount: len(prayers),
			Streak:      outcome.Streak,
			PrayedAt:    now,
		})
		s.award(ctx, actor.User_ID, criteria, &outcome)
	}

	request, err := s.store.GetPrayerRequestByID(ctx, prayer.Prayer_Request_ID)
	if err != nil {
		outcome.fail("notify", err)
		return outcome
	}
	s.notify(ctx, request, *actor, NotificationPrayedFor, &outcome)

	return outcome
}

// OnPrayerRequestCreated evaluates request milestones for the requester.
func (s *EngagementService) OnPrayerRequestCreated(ctx context.Context, request models.PrayerRequest, actingUserID *int) (outcome Outcome) {
	outcome.Event = EventPrayerRequestCreated
	defer s.finish(&outcome)

	actor, ok := s.resolveActor(ctx, actingUserID, &outcome)
	if !ok {
		return outcome
	}

	requests, err := s.store.GetPrayerRequestsByRequesterID(ctx, actor.User_ID)
	if err != nil {
		outcome.fail("compute metrics", err)
		return outcome
	}

	s.award(ctx, actor.User_ID, EvaluateRequestBadges(len(requests)), &outcome)
	return outcome
}

// OnCommentCreated notifies the owner of the commented-on request.
func (s *EngagementService) OnCommentCreated(ctx context.Context, comment models.Comment, actingUserID *int) (outcome Outcome) {
	outcome.Event = EventCommentCreated
	defer s.finish(&outcome)

	actor, ok := s.resolveActor(ctx, actingUserID, &outcome)
	if !ok {
		return outcome
	}

	request, err := s.store.GetPrayerRequestByID(ctx, comment.Prayer_Request_ID)
	if err != nil {
		outcome.fail("notify", err)
		return outcome
	}
	s.notify(ctx, request, *actor, NotificationCommented, &outcome)

	return outcome
}

// resolveActor looks the acting user up once, before any writes happen.
func (s *EngagementService) resolveActor(ctx context.Context, actingUserID *int, outcome *Outcome) (*models.UserProfile, bool) {
	if actingUserID == nil {
		outcome.skip("anonymous actor")
		return nil, false
	}
	outcome.ActorID = *actingUserID

	actor, err := s.store.GetUserByID(ctx, *actingUserID)
	if err != nil {
		outcome.fail("resolve actor", err)
		outcome.skip("actor lookup failed")
		return nil, false
	}
	if actor == nil {
		log.Printf("Skipping engagement %s: %v (user %d)", outcome.Event, ErrInvalidActor, *actingUserID)
		outcome.skip(ErrInvalidActor.Error())
		return nil, false
	}
	return actor, true
}

func (s *EngagementService) award(ctx context.Context, userID int, criteria []string, outcome *Outcome) {
	for _, key := range criteria {
		if _, ok := s.catalog.Lookup(key); !ok {
			log.Printf("No badge defined for criteria %s, skipping award", key)
			continue
		}
		if err := s.store.AwardBadge(ctx, userID, key); err != nil {
			outcome.fail("award "+key, err)
			continue
		}
		outcome.Awarded = append(outcome.Awarded, key)
	}
}

func (s *EngagementService) notify(ctx context.Context, request *models.PrayerRequest, actor models.UserProfile, kind NotificationKind, outcome *Outcome) {
	notified, err := s.dispatcher.NotifyRequestOwner(ctx, request, actor, kind)
	if err != nil {
		outcome.fail("notify", err)
		return
	}
	outcome.Notified = notified
}

// finish turns a panic in any step into a recorded failure and records the run.
func (s *EngagementService) finish(outcome *Outcome) {
	if r := recover(); r != nil {
		outcome.fail("panic", errors.New(fmt.Sprint(r)))
	}
	recordOutcome(*outcome)
}
