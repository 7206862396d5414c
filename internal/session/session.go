package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Data is everything a session carries: a back-reference to the channel.
// The session never owns the channel record itself.
type Data struct {
	ChannelId uint `json:"channelId"`
}

type Store interface {
	// Get returns (nil, nil) when the session does not exist.
	Get(ctx context.Context, id string) (*Data, error)
	Set(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

const redisPrefix = "sess:"

// RedisStore keeps session payloads under "sess:<id>" with the store's TTL
// as the only expiry mechanism.
type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	raw, err := s.Client.Get(ctx, redisPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, redisPrefix+id, raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, redisPrefix+id).Err()
}

// Manager resolves and issues session cookies. The cookie value is
// "<id>.<hmac>" so a guessed or tampered id never reaches the store.
type Manager struct {
	Store      Store
	CookieName string
	Secret     string
	TTL        time.Duration
}

// Load resolves the request's session. Returns nil when the cookie is
// missing, tampered with, or the store has no entry for it.
func (m *Manager) Load(c fiber.Ctx) *Data {
	id, ok := m.verify(c.Cookies(m.CookieName))
	if !ok {
		return nil
	}

	data, err := m.Store.Get(c.Context(), id)
	if err != nil || data == nil {
		return nil
	}
	return data
}

// Save creates a fresh session for channelId and sets the cookie.
func (m *Manager) Save(c fiber.Ctx, channelId uint) error {
	id := uuid.New().String()

	if err := m.Store.Set(c.Context(), id, &Data{ChannelId: channelId}, m.TTL); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.CookieName,
		Value:    m.sign(id),
		Expires:  time.Now().Add(m.TTL),
		HTTPOnly: true,
	})
	return nil
}

// Destroy removes the session entry and clears the cookie.
func (m *Manager) Destroy(c fiber.Ctx) error {
	if id, ok := m.verify(c.Cookies(m.CookieName)); ok {
		if err := m.Store.Delete(c.Context(), id); err != nil {
			return err
		}
	}
	c.ClearCookie(m.CookieName)
	return nil
}

func (m *Manager) sign(id string) string {
	return id + "." + m.signature(id)
}

func (m *Manager) verify(cookie string) (string, bool) {
	id, sig, found := strings.Cut(cookie, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.signature(id))) {
		return "", false
	}
	return id, true
}

func (m *Manager) signature(id string) string {
	mac := hmac.New(sha256.New, []byte(m.Secret))
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
