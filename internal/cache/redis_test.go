package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/abhishek622/interviewPrep/internal/session"
	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := NewRedisClient(addr, "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, Ping(context.Background(), rdb))
	return NewRedisStore(rdb, time.Minute)
}

func TestSessionKey(t *testing.T) {
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	assert.Equal(t, "interview:session:0f8fad5b-d9cb-469f-a165-70867728950e", sessionKey(id))
}

func TestRedisStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess := &model.Session{
		SessionID:      uuid.New(),
		Status:         model.SessionStatusActive,
		TotalQuestions: 3,
		QuestionsAsked: []string{"What is a channel?"},
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sess.QuestionsAsked, got.QuestionsAsked)
	assert.Equal(t, 3, got.TotalQuestions)

	ttl, err := store.rdb.TTL(ctx, sessionKey(sess.SessionID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, sess.SessionID))
	_, err = store.Get(ctx, sess.SessionID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, sess.SessionID), session.ErrSessionNotFound)
}
