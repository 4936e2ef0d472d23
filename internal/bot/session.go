package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlowStep is the position of a user inside the booking dialogue.
type FlowStep string

const (
	StepIdle            FlowStep = "idle"
	StepChoosingService FlowStep = "choosing_service"
	StepChoosingDay     FlowStep = "choosing_day"
	StepChoosingTime    FlowStep = "choosing_time"
	StepConfirming      FlowStep = "confirming"
)

// FlowState is the per-user dialogue state, built up step by step. It lives
// in redis keyed by the Telegram user id, so a restart does not strand users
// mid-dialogue.
type FlowState struct {
	Step        FlowStep  `json:"step"`
	MasterID    int       `json:"master_id,omitempty"`
	ServiceID   int       `json:"service_id,omitempty"`
	DurationMin int       `json:"duration_min,omitempty"`
	ChosenDate  string    `json:"chosen_date,omitempty"`
	ChosenStart time.Time `json:"chosen_start,omitempty"`
}

// SessionStore keeps dialogue state in redis with a sliding expiry.
// Abandoned dialogues simply age out.
type SessionStore struct {
	rdb    *redis.Client
	expiry time.Duration
}

func NewSessionStore(rdb *redis.Client, expiry time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, expiry: expiry}
}

func sessionKey(tgUserID int64) string {
	return fmt.Sprintf("flow:%d", tgUserID)
}

// Get returns the user's flow state; a missing or expired session reads as idle.
func (s *SessionStore) Get(ctx context.Context, tgUserID int64) (*FlowState, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(tgUserID)).Result()
	if errors.Is(err, redis.Nil) {
		return &FlowState{Step: StepIdle}, nil
	}
	if err != nil {
		return nil, err
	}

	var state FlowState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt session data is not worth failing the update over.
		return &FlowState{Step: StepIdle}, nil
	}
	return &state, nil
}

func (s *SessionStore) Put(ctx context.Context, tgUserID int64, state *FlowState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(tgUserID), raw, s.expiry).Err()
}

func (s *SessionStore) Clear(ctx context.Context, tgUserID int64) error {
	return s.rdb.Del(ctx, sessionKey(tgUserID)).Err()
}
