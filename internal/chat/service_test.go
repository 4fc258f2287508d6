package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthplug/pharmabot/internal/intent"
	"github.com/healthplug/pharmabot/internal/orders"
	"github.com/healthplug/pharmabot/internal/session"
)

func newTestService(t *testing.T) (*Service, *session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(client, time.Hour)
	engine := intent.NewEngine(intent.Options{
		ParseOrderID: func(text string) (string, bool) {
			id := orders.ParseOrderIDFromText(text)
			return id, id != ""
		},
		IsValidOrderID: orders.IsValidOrderID,
	})
	return NewService(engine, store, nil, nil), store
}

func TestProcessArmsProductPagination(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	res := svc.Process(ctx, "search for paracetamol", "sender-1")
	assert.Equal(t, intent.IntentSearchProducts, res.Intent)

	sess, err := store.Load(ctx, "sender-1")
	require.NoError(t, err)
	assert.True(t, bool(sess.Data.ProductPagination))
}

func TestProcessNumericSelectionClearsMarkers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Process(ctx, "search for paracetamol", "sender-2")
	res := svc.Process(ctx, "2", "sender-2")
	assert.Equal(t, intent.IntentPaginationSelection, res.Intent)
	assert.Equal(t, intent.SourceNumericContext, res.Source)
	assert.Equal(t, "2", res.Parameters["selection"])

	sess, err := store.Load(ctx, "sender-2")
	require.NoError(t, err)
	assert.Equal(t, session.Data{}, sess.Data)

	// With markers cleared, digits revert to feature commands.
	res = svc.Process(ctx, "2", "sender-2")
	assert.Equal(t, intent.IntentSearchDoctors, res.Intent)
	assert.Equal(t, intent.SourceNumeric, res.Source)
}

func TestProcessCancelClearsMarkers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Process(ctx, "view cart", "sender-3")
	sess, err := store.Load(ctx, "sender-3")
	require.NoError(t, err)
	assert.True(t, bool(sess.Data.CartPagination))

	svc.Process(ctx, "cancel", "sender-3")
	sess, err = store.Load(ctx, "sender-3")
	require.NoError(t, err)
	assert.Equal(t, session.Data{}, sess.Data)
}

func TestProcessCancelInsideSentenceClearsMarkers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Process(ctx, "view cart", "sender-7")
	sess, err := store.Load(ctx, "sender-7")
	require.NoError(t, err)
	assert.True(t, bool(sess.Data.CartPagination))

	// The guard passes messages containing a navigation word back to the
	// cascade; the marker must still come down so the sender is not stuck
	// in the list.
	res := svc.Process(ctx, "please cancel", "sender-7")
	assert.Equal(t, intent.IntentUnknown, res.Intent)

	sess, err = store.Load(ctx, "sender-7")
	require.NoError(t, err)
	assert.Equal(t, session.Data{}, sess.Data)

	svc.Process(ctx, "view cart", "sender-7")
	svc.Process(ctx, "ok stop that", "sender-7")
	sess, err = store.Load(ctx, "sender-7")
	require.NoError(t, err)
	assert.Equal(t, session.Data{}, sess.Data)
}

func TestProcessDoctorSearchMarkers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Process(ctx, "find me a cardiologist", "sender-4")
	sess, err := store.Load(ctx, "sender-4")
	require.NoError(t, err)
	assert.True(t, bool(sess.Data.DoctorPagination))
	assert.False(t, bool(sess.Data.DoctorSpecialtyPagination))

	svc.Process(ctx, "I need a doctor", "sender-5")
	sess, err = store.Load(ctx, "sender-5")
	require.NoError(t, err)
	assert.True(t, bool(sess.Data.DoctorSpecialtyPagination))
}

func TestProcessSerializesPerSender(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Process(ctx, "search for vitamins", "sender-6")
		}()
	}
	wg.Wait()

	sess, err := store.Load(ctx, "sender-6")
	require.NoError(t, err)
	assert.True(t, bool(sess.Data.ProductPagination))
}
