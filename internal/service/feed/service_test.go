package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name         string
	transactions []feed.FeedTransaction
	err          error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) ListConfirmed(ctx context.Context, limit int) ([]feed.FeedTransaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.transactions, nil
}

type stubReciprocal struct {
	// balanced pairs keyed by "giver|receiver"
	balanced map[string]bool
	err      error
	calls    int
}

func (s *stubReciprocal) HasReciprocal(ctx context.Context, giverID, receiverID string, hours float64, at time.Time, window time.Duration, tolerance float64) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.balanced[giverID+"|"+receiverID], nil
}

func memberTx(id, giver, receiver, description string, hours float64, at time.Time) feed.FeedTransaction {
	return feed.FeedTransaction{
		ID:           id,
		Source:       feed.SourceMember,
		GiverID:      giver,
		GiverName:    "Giver " + giver,
		ReceiverID:   receiver,
		ReceiverName: "Receiver " + receiver,
		Hours:        hours,
		Description:  description,
		CreatedAt:    at,
	}
}

func TestFeedService_GetFeed_GroupsSameSession(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC)

	// Same giver and description to three receivers within the same hour
	source := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Portfolio review", 1, base.Add(20*time.Minute)),
		memberTx("t2", "alice", "carol", "Portfolio review", 1, base.Add(10*time.Minute)),
		memberTx("t3", "alice", "dave", "Portfolio review", 1, base),
	}}
	svc := NewFeedService(&stubReciprocal{}, source)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	group := resp.Items[0]
	assert.True(t, group.IsGroup)
	assert.Equal(t, "alice", group.GiverID)
	assert.Len(t, group.Receivers, 3)
	assert.Equal(t, 3.0, group.TotalHours)
	// Newest transaction opens the group and sets its timestamp
	assert.Equal(t, base.Add(20*time.Minute), group.CreatedAt)
}

func TestFeedService_GetFeed_SeparatesByHourBucket(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 55, 0, 0, time.UTC)

	// Same giver and description but the second log lands in the next hour
	source := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Pairing session", 1, base.Add(10*time.Minute)),
		memberTx("t2", "alice", "carol", "Pairing session", 1, base),
	}}
	svc := NewFeedService(&stubReciprocal{}, source)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.False(t, resp.Items[0].IsGroup)
	assert.False(t, resp.Items[1].IsGroup)
}

func TestFeedService_GetFeed_MergesSourcesNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	members := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Intro call", 1, base.Add(2*time.Hour)),
	}}
	agentTx := feed.FeedTransaction{
		ID: "a1", Source: feed.SourceAgent,
		GiverID: "agent-1", GiverName: "Research Agent",
		ReceiverID: "carol", ReceiverName: "Carol",
		Hours: 2, Description: "Market research", CreatedAt: base.Add(3 * time.Hour),
	}
	agents := &stubSource{name: "agents", transactions: []feed.FeedTransaction{agentTx}}

	svc := NewFeedService(&stubReciprocal{}, members, agents)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, feed.SourceAgent, resp.Items[0].Source)
	assert.Equal(t, feed.SourceMember, resp.Items[1].Source)
}

func TestFeedService_GetFeed_FailingSourceIsSkipped(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	healthy := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Intro call", 1, base),
	}}
	broken := &stubSource{name: "agents", err: errors.New("connection refused")}

	svc := NewFeedService(&stubReciprocal{}, healthy, broken)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestFeedService_GetFeed_BalanceAnnotation(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	source := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Design feedback", 2, base.Add(time.Hour)),
		memberTx("t2", "carol", "dave", "Tax questions", 5, base),
	}}
	checker := &stubReciprocal{balanced: map[string]bool{"alice|bob": true}}

	svc := NewFeedService(checker, source)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].IsBalanced)
	assert.False(t, resp.Items[1].IsBalanced)
	assert.Equal(t, 2, checker.calls)
}

func TestFeedService_GetFeed_BalanceSkipsGroupsAndAgents(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	members := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Workshop", 1, base.Add(5*time.Minute)),
		memberTx("t2", "alice", "carol", "Workshop", 1, base),
	}}
	agents := &stubSource{name: "agents", transactions: []feed.FeedTransaction{{
		ID: "a1", Source: feed.SourceAgent,
		GiverID: "agent-1", ReceiverID: "dave",
		Hours: 2, Description: "Research", CreatedAt: base.Add(time.Hour),
	}}}
	checker := &stubReciprocal{}

	svc := NewFeedService(checker, members, agents)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	// Neither the grouped workshop nor the agent entry consults the checker
	assert.Equal(t, 0, checker.calls)
}

func TestFeedService_GetFeed_CheckerFailureLeavesEntryUnannotated(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	source := &stubSource{name: "members", transactions: []feed.FeedTransaction{
		memberTx("t1", "alice", "bob", "Design feedback", 2, base),
	}}
	checker := &stubReciprocal{err: errors.New("timeout")}

	svc := NewFeedService(checker, source)

	resp, err := svc.GetFeed(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].IsBalanced)
}

func TestFeedService_GetFeed_LimitTruncatesGroups(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	var transactions []feed.FeedTransaction
	for i := 0; i < 5; i++ {
		transactions = append(transactions, memberTx(
			string(rune('a'+i)), "giver", "receiver",
			"Session "+string(rune('a'+i)), 1,
			base.Add(time.Duration(i)*2*time.Hour),
		))
	}
	source := &stubSource{name: "members", transactions: transactions}
	svc := NewFeedService(&stubReciprocal{}, source)

	resp, err := svc.GetFeed(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, resp.Items, 3)
}
