package service

import (
	"errors"
	"testing"

	"playtube/internal/repository"

	"gorm.io/gorm"
)

func newSubscriptionService(t *testing.T, db *gorm.DB) *SubscriptionService {
	t.Helper()
	return NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestSubscriptionToggle(t *testing.T) {
	db := newTestDB(t)
	svc := newSubscriptionService(t, db)
	fan := seedUser(t, db, "fan")
	channel := seedUser(t, db, "channel")

	result, err := svc.Toggle(fan.ID, channel.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !result.Active {
		t.Error("first toggle should subscribe")
	}

	result, err = svc.Toggle(fan.ID, channel.ID)
	if err != nil {
		t.Fatalf("Toggle twice: %v", err)
	}
	if result.Active {
		t.Error("second toggle should unsubscribe")
	}

	if _, err := svc.Toggle(fan.ID, fan.ID); !errors.Is(err, ErrSelfSubscribe) {
		t.Errorf("self subscribe error = %v, want ErrSelfSubscribe", err)
	}
	if _, err := svc.Toggle(fan.ID, 99999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing channel error = %v, want ErrUserNotFound", err)
	}
}

func TestSubscriptionLists(t *testing.T) {
	db := newTestDB(t)
	svc := newSubscriptionService(t, db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// alice 和 bob 都订阅 carol，alice 还订阅了 bob
	for _, pair := range [][2]int64{{alice.ID, carol.ID}, {bob.ID, carol.ID}, {alice.ID, bob.ID}} {
		if _, err := svc.Toggle(pair[0], pair[1]); err != nil {
			t.Fatalf("Toggle(%d->%d): %v", pair[0], pair[1], err)
		}
	}

	subscribers, meta, err := svc.GetSubscribers(carol.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetSubscribers: %v", err)
	}
	if meta.Total != 2 || len(subscribers) != 2 {
		t.Errorf("carol subscribers total=%d len=%d, want 2/2", meta.Total, len(subscribers))
	}

	channels, meta, err := svc.GetSubscribedChannels(alice.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetSubscribedChannels: %v", err)
	}
	if meta.Total != 2 || len(channels) != 2 {
		t.Errorf("alice channels total=%d len=%d, want 2/2", meta.Total, len(channels))
	}

	// bob 只订阅了 carol
	channels, _, err = svc.GetSubscribedChannels(bob.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetSubscribedChannels: %v", err)
	}
	if len(channels) != 1 || channels[0].Username != "carol" {
		t.Errorf("bob channels = %v, want only carol", channels)
	}

	if _, _, err := svc.GetSubscribers(99999, 1, 10); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing channel error = %v, want ErrUserNotFound", err)
	}
}
