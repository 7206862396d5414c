package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func guardedApp() (*fiber.App, *session.Manager) {
	sessions := &session.Manager{
		Store:      &memoryStore{data: make(map[string]session.Data)},
		CookieName: "sid",
		Secret:     "test-secret",
		TTL:        time.Hour,
	}

	app := fiber.New()
	app.Use(LoadSession(sessions))
	app.Post("/login", func(c fiber.Ctx) error {
		return sessions.Save(c, 7)
	})
	app.Get("/mine", func(c fiber.Ctx) error {
		return c.SendString("mine")
	}, RequireAuth)
	return app, sessions
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	app, _ := guardedApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/mine", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuthAllowsSession(t *testing.T) {
	app, _ := guardedApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatal(err)
	}

	recorder := httptest.NewRecorder()
	for _, value := range resp.Header.Values("Set-Cookie") {
		recorder.Header().Add("Set-Cookie", value)
	}
	cookies := recorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/mine", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "mine" {
		t.Fatalf("body = %q, want %q", body, "mine")
	}
}

func TestChannelIdDefaultsToZero(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		if id := ChannelId(c); id != 0 {
			t.Errorf("ChannelId = %d, want 0", id)
		}
		return nil
	})
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatal(err)
	}
}
