package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/notification"
)

type fakeNotificationRepo struct {
	mu           sync.Mutex
	stored       []*notification.Notification
	batchCalls   int
	directCalls  int
	lastPage     int
	lastPageSize int
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directCalls++
	r.stored = append(r.stored, n)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batchCalls++
	r.stored = append(r.stored, notifications...)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPage = page
	r.lastPageSize = pageSize
	var out []*notification.Notification
	for _, n := range r.stored {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.stored {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.stored {
		for _, id := range ids {
			if n.ID == id && n.RecipientID == recipientID {
				n.IsRead = true
			}
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.stored {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.stored {
		if n.ID == id && n.RecipientID == recipientID {
			r.stored = append(r.stored[:i], r.stored[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) snapshot() []*notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*notification.Notification, len(r.stored))
	copy(out, r.stored)
	return out
}

func (r *fakeNotificationRepo) storedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stored)
}

func queueRequest(recipient, title string) notification.CreateNotificationRequest {
	sender := "p-sender"
	return notification.CreateNotificationRequest{
		RecipientID: recipient,
		SenderID:    &sender,
		Type:        notification.TypeTimeLogged,
		Title:       title,
		Message:     "Someone logged time with you",
		Data:        map[string]interface{}{"transaction_id": "tx-1"},
	}
}

func TestNotificationService_QueueNotification_DrainsOnStop(t *testing.T) {
	repo := &fakeNotificationRepo{}

	// Long flush interval so only Stop can flush the batch
	svc := NewNotificationService(repo, Config{
		WorkerCount:   1,
		FlushInterval: time.Minute,
	})

	ctx := context.Background()
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-bob", "Time logged with you")))
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-bob", "Confirmation reminder")))
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-carol", "Time logged with you")))

	svc.Stop()

	stored := repo.snapshot()
	require.Len(t, stored, 3)
	assert.NotEmpty(t, stored[0].ID)
	assert.Equal(t, "p-bob", stored[0].RecipientID)
	assert.Equal(t, notification.TypeTimeLogged, stored[0].Type)
	assert.False(t, stored[0].IsRead)
	assert.Equal(t, 0, repo.directCalls)
}

func TestNotificationService_QueueNotification_FlushesFullBatch(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{
		WorkerCount:   1,
		BatchSize:     2,
		FlushInterval: time.Minute,
	})
	defer svc.Stop()

	ctx := context.Background()
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-bob", "one")))
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-bob", "two")))

	// A full batch flushes without waiting for the ticker or Stop
	require.Eventually(t, func() bool {
		return repo.storedCount() == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotificationService_QueueNotification_FullQueueFallsBackToDirectInsert(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{
		WorkerCount: 1,
		QueueSize:   1,
	})

	// With the workers stopped nothing drains the queue, so the second
	// request cannot be buffered
	svc.Stop()

	ctx := context.Background()
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-bob", "buffered")))
	require.NoError(t, svc.QueueNotification(ctx, queueRequest("p-bob", "direct")))

	assert.Equal(t, 1, repo.directCalls)
	require.Equal(t, 1, repo.storedCount())
	assert.Equal(t, "direct", repo.snapshot()[0].Title)
}

func TestNotificationService_GetNotifications_ClampsPaging(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{WorkerCount: 1})
	defer svc.Stop()

	resp, err := svc.GetNotifications(context.Background(), "p-bob", 0, 0, false)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastPage)
	assert.Equal(t, 20, repo.lastPageSize)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
}

func TestNotificationService_GetNotifications_ReportsUnread(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sender := "p-alice"
	repo.stored = []*notification.Notification{
		{ID: "n1", RecipientID: "p-bob", SenderID: &sender, Type: notification.TypeTimeLogged, Title: "Time logged with you", CreatedAt: time.Now()},
		{ID: "n2", RecipientID: "p-bob", Type: notification.TypeTransactionConfirmed, Title: "Time confirmed", IsRead: true, CreatedAt: time.Now()},
		{ID: "n3", RecipientID: "p-carol", Type: notification.TypeTimeLogged, Title: "Time logged with you", CreatedAt: time.Now()},
	}
	svc := NewNotificationService(repo, Config{WorkerCount: 1})
	defer svc.Stop()

	resp, err := svc.GetNotifications(context.Background(), "p-bob", 1, 20, false)

	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.UnreadCount)

	unread, err := svc.GetNotifications(context.Background(), "p-bob", 1, 20, true)
	require.NoError(t, err)
	assert.Len(t, unread.Notifications, 1)
	assert.Equal(t, "n1", unread.Notifications[0].ID)
}

func TestNotificationService_MarkAsRead_ScopedToRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	repo.stored = []*notification.Notification{
		{ID: "n1", RecipientID: "p-bob"},
		{ID: "n2", RecipientID: "p-carol"},
	}
	svc := NewNotificationService(repo, Config{WorkerCount: 1})
	defer svc.Stop()

	err := svc.MarkAsRead(context.Background(), "p-bob", notification.MarkAsReadRequest{
		NotificationIDs: []string{"n1", "n2"},
	})

	require.NoError(t, err)
	stored := repo.snapshot()
	assert.True(t, stored[0].IsRead)
	// Another recipient's notification is untouched even when its id is sent
	assert.False(t, stored[1].IsRead)
}
