package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/apperror"
)

const sessionKeyPrefix = "session:"

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, id string, values map[string]interface{}, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (map[string]interface{}, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

// CreateOrUpdate stores the session values as JSON. A zero ttl keeps the key without expiry.
func (that *dbSession) CreateOrUpdate(ctx context.Context, id string, values map[string]interface{}, ttl time.Duration) error {
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = that.client.Set(ctx, sessionKeyPrefix+id, valuesJSON, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (map[string]interface{}, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	// numbers are kept as json.Number so integer values survive the round trip
	decoder := json.NewDecoder(bytes.NewReader(response))
	decoder.UseNumber()

	values := make(map[string]interface{})
	if err = decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return values, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	err := that.client.Del(ctx, sessionKeyPrefix+id).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	return nil
}
