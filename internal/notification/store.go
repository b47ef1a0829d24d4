// Package notification keeps the per-session list of user-facing events.
package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tasdrives/internal/model"
	"tasdrives/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Key is the storage key of the persisted notification list.
const Key = "notifications"

// Store holds the notifications of one session, newest first.
type Store struct {
	mu            sync.Mutex
	kv            storage.KV
	logger        zerolog.Logger
	now           func() time.Time
	notifications []model.Notification
}

// NewStore creates an empty notification store bound to kv.
func NewStore(kv storage.KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:            kv,
		logger:        logger.With().Str("component", "notifications").Logger(),
		now:           time.Now,
		notifications: []model.Notification{},
	}
}

// Init loads the persisted list. Malformed data yields an empty list.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return err
	}

	s.notifications = []model.Notification{}
	if !ok || raw == "" {
		return nil
	}

	var list []model.Notification
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn().Err(err).Msg("stored notifications are malformed, starting empty")
		return nil
	}
	if list != nil {
		s.notifications = list
	}
	return nil
}

// Add prepends a new unread notification and returns it.
func (s *Store) Add(ctx context.Context, n model.NewNotification) model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification := model.Notification{
		ID:      uuid.NewString(),
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
		Date:    s.now().UTC(),
		Read:    false,
		Data:    n.Data,
	}
	if notification.Type == "" {
		notification.Type = model.NotificationInfo
	}

	s.notifications = append([]model.Notification{notification}, s.notifications...)
	s.persist(ctx)

	return notification
}

// MarkAsRead marks the notification with id as read. Unknown ids are ignored.
func (s *Store) MarkAsRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			if s.notifications[i].Read {
				return
			}
			s.notifications[i].Read = true
			s.persist(ctx)
			return
		}
	}
}

func (s *Store) MarkAllAsRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.persist(ctx)
}

func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = []model.Notification{}
	s.persist(ctx)
}

// List returns a copy of the notifications, newest first.
func (s *Store) List() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// Snapshot returns the list and unread count taken under one lock.
func (s *Store) Snapshot() model.NotificationList {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)

	unread := 0
	for _, n := range out {
		if !n.Read {
			unread++
		}
	}
	return model.NotificationList{Notifications: out, UnreadCount: unread}
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.notifications)
	if err == nil {
		err = s.kv.Set(ctx, Key, string(data))
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist notifications")
	}
}
