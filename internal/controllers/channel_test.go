package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"videoshub-backend/internal/middleware"
	"videoshub-backend/internal/session"

	"github.com/gofiber/fiber/v3"
)

type memoryStore struct {
	data map[string]session.Data
}

func (s *memoryStore) Get(_ context.Context, id string) (*session.Data, error) {
	data, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &data, nil
}

func (s *memoryStore) Set(_ context.Context, id string, data *session.Data, _ time.Duration) error {
	s.data[id] = *data
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func subscribeApp(channelId uint) (*fiber.App, []*http.Cookie) {
	sessions := &session.Manager{
		Store:      &memoryStore{data: make(map[string]session.Data)},
		CookieName: "sid",
		Secret:     "test-secret",
		TTL:        time.Hour,
	}

	app := fiber.New()
	app.Use(middleware.LoadSession(sessions))
	app.Post("/login", func(c fiber.Ctx) error {
		return sessions.Save(c, channelId)
	})
	app.Patch("/channels/subscribe/:id", Subscribe, middleware.RequireAuth)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		panic(err)
	}
	recorder := httptest.NewRecorder()
	for _, value := range resp.Header.Values("Set-Cookie") {
		recorder.Header().Add("Set-Cookie", value)
	}
	return app, recorder.Result().Cookies()
}

// Subscribing to your own channel is rejected before any edge or counter is
// touched.
func TestSubscribeToYourselfRejected(t *testing.T) {
	app, cookies := subscribeApp(7)

	req := httptest.NewRequest(http.MethodPatch, "/channels/subscribe/7", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var response ErrorResponse
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatal(err)
	}
	if response.Message != "You cannot subscribe to yourself" {
		t.Fatalf("message = %q, want %q", response.Message, "You cannot subscribe to yourself")
	}
}

func TestSubscribeRequiresSession(t *testing.T) {
	app, _ := subscribeApp(7)

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/channels/subscribe/7", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
