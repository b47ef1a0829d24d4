package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasdrives/internal/model"
	"tasdrives/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (brokenKV) Set(context.Context, string, string) error         { return errors.New("disk full") }
func (brokenKV) Remove(context.Context, string) error              { return errors.New("disk full") }

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()

	kv := storage.NewMemoryKV()
	store := NewStore(kv, zerolog.Nop())
	store.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, store.Init(context.Background()))
	return store, kv
}

func purchase(orderNumber string, total float64) model.NewNotification {
	return model.NewNotification{
		Type:    model.NotificationPurchase,
		Title:   "¡Compra realizada con éxito!",
		Message: "Tu pedido #" + orderNumber + " ha sido confirmado.",
		Data:    &model.NotificationData{OrderNumber: orderNumber, Total: &total},
	}
}

func TestStore_AddPrependsUnread(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := store.Add(ctx, purchase("TAS-1", 100))
	second := store.Add(ctx, model.NewNotification{Type: model.NotificationSystem, Title: "Mantenimiento", Message: "Hoy"})

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, list[0].Read)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 2, store.UnreadCount())
}

func TestStore_AddDefaultsType(t *testing.T) {
	store, _ := newTestStore(t)

	n := store.Add(context.Background(), model.NewNotification{Title: "Hola"})

	assert.Equal(t, model.NotificationInfo, n.Type)
}

func TestStore_MarkAsRead(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a := store.Add(ctx, purchase("TAS-1", 1))
	store.Add(ctx, purchase("TAS-2", 2))

	store.MarkAsRead(ctx, a.ID)
	store.MarkAsRead(ctx, "unknown")

	assert.Equal(t, 1, store.UnreadCount())
	for _, n := range store.List() {
		assert.Equal(t, n.ID == a.ID, n.Read)
	}
}

func TestStore_MarkAllAsReadAndClear(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	store.Add(ctx, purchase("TAS-1", 1))
	store.Add(ctx, purchase("TAS-2", 2))

	store.MarkAllAsRead(ctx)
	assert.Zero(t, store.UnreadCount())
	assert.Len(t, store.List(), 2)

	store.ClearAll(ctx)
	assert.Empty(t, store.List())

	raw, ok, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestStore_PersistAndReload(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	added := store.Add(ctx, purchase("TAS-9", 1234.5))

	reloaded := NewStore(kv, zerolog.Nop())
	require.NoError(t, reloaded.Init(ctx))

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, added.ID, list[0].ID)
	assert.Equal(t, model.NotificationPurchase, list[0].Type)
	require.NotNil(t, list[0].Data)
	assert.Equal(t, "TAS-9", list[0].Data.OrderNumber)
	assert.Equal(t, 1234.5, *list[0].Data.Total)
	assert.True(t, added.Date.Equal(list[0].Date))
}

func TestStore_InitMalformed(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, Key, "{{{"))

	store := NewStore(kv, zerolog.Nop())
	require.NoError(t, store.Init(ctx))

	assert.Empty(t, store.List())
	assert.Zero(t, store.UnreadCount())
}

func TestStore_WriteFailureIsSwallowed(t *testing.T) {
	store := NewStore(brokenKV{}, zerolog.Nop())
	require.NoError(t, store.Init(context.Background()))

	store.Add(context.Background(), purchase("TAS-1", 1))

	snapshot := store.Snapshot()
	assert.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, 1, snapshot.UnreadCount)
}
