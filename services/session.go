package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"

	"storebot/db"
)

// ConversationState is everything the assistant remembers about one
// conversation between turns: the cart (product id -> quantity) and the
// accumulated eco-points.
type ConversationState struct {
	Cart      map[int64]int `json:"cart"`
	EcoPoints int           `json:"eco_points"`
}

func NewConversationState() *ConversationState {
	return &ConversationState{Cart: make(map[int64]int)}
}

// ConversationStore persists conversation state between turns. Get on an
// unknown conversation returns a fresh empty state.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) (*ConversationState, error)
	Save(ctx context.Context, conversationID string, st *ConversationState) error
	Clear(ctx context.Context, conversationID string) error
}

// PGConversationStore keeps state in the conversations table as JSONB.
type PGConversationStore struct{}

func (PGConversationStore) Get(ctx context.Context, conversationID string) (*ConversationState, error) {
	var stateJSON []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT state FROM conversations WHERE id = $1`,
		conversationID,
	).Scan(&stateJSON)
	return stateFromRow(stateJSON, err)
}

// stateFromRow maps a conversations row lookup to state. Only a missing row
// means a fresh conversation; any other error propagates, so a transient
// failure can never be saved back over the stored state as an empty cart.
func stateFromRow(raw []byte, err error) (*ConversationState, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return NewConversationState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return decodeState(raw)
}

func (PGConversationStore) Save(ctx context.Context, conversationID string, st *ConversationState) error {
	stateJSON, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal conversation state: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO conversations (id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET
			state = $2,
			updated_at = now()`,
		conversationID, stateJSON,
	)
	return err
}

func (PGConversationStore) Clear(ctx context.Context, conversationID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, conversationID)
	return err
}

// RedisConversationStore keeps state in Redis with a sliding 30-day TTL.
// Used when REDIS_ADDR is configured.
type RedisConversationStore struct {
	Client *redis.Client
}

const conversationTTL = 30 * 24 * time.Hour

func redisKey(conversationID string) string {
	return "conversation:" + conversationID
}

func (s *RedisConversationStore) Get(ctx context.Context, conversationID string) (*ConversationState, error) {
	raw, err := s.Client.Get(ctx, redisKey(conversationID)).Bytes()
	if err == redis.Nil {
		return NewConversationState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get conversation: %w", err)
	}
	return decodeState(raw)
}

func (s *RedisConversationStore) Save(ctx context.Context, conversationID string, st *ConversationState) error {
	stateJSON, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal conversation state: %w", err)
	}
	return s.Client.Set(ctx, redisKey(conversationID), stateJSON, conversationTTL).Err()
}

func (s *RedisConversationStore) Clear(ctx context.Context, conversationID string) error {
	return s.Client.Del(ctx, redisKey(conversationID)).Err()
}

func decodeState(raw []byte) (*ConversationState, error) {
	st := NewConversationState()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("unmarshal conversation state: %w", err)
		}
	}
	if st.Cart == nil {
		st.Cart = make(map[int64]int)
	}
	return st, nil
}
