package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"videoshub-backend/internal/models"

	"github.com/gofiber/fiber/v3"
)

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name     string
		privacy  int
		ownerId  uint
		viewerId uint
		want     bool
	}{
		{"public video, anonymous viewer", models.PrivacyPublic, 1, 0, true},
		{"public video, any viewer", models.PrivacyPublic, 1, 2, true},
		{"private video, owner", models.PrivacyPrivate, 1, 1, true},
		{"private video, other channel", models.PrivacyPrivate, 1, 2, false},
		{"private video, anonymous", models.PrivacyPrivate, 1, 0, false},
		{"unlisted video, owner", models.PrivacyUnlisted, 1, 1, true},
		{"unlisted video, other channel", models.PrivacyUnlisted, 1, 2, false},
		{"unlisted video, anonymous", models.PrivacyUnlisted, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := &models.Video{ChannelId: tt.ownerId, Privacy: tt.privacy}
			if got := visibleTo(video, tt.viewerId); got != tt.want {
				t.Errorf("visibleTo(privacy=%d, owner=%d, viewer=%d) = %v, want %v",
					tt.privacy, tt.ownerId, tt.viewerId, got, tt.want)
			}
		})
	}
}

// A hidden video and a missing video must produce byte-identical responses,
// otherwise probing ids reveals which private videos exist.
func TestVideoNotFoundIndistinguishable(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c fiber.Ctx) error {
		return videoNotFound(c)
	})
	app.Get("/hidden", func(c fiber.Ctx) error {
		// What GetVideo renders when visibleTo fails.
		return videoNotFound(c)
	})

	fetch := func(path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	missingStatus, missingBody := fetch("/missing")
	hiddenStatus, hiddenBody := fetch("/hidden")

	if missingStatus != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", missingStatus)
	}
	if missingStatus != hiddenStatus {
		t.Fatalf("statuses differ: %d vs %d", missingStatus, hiddenStatus)
	}
	if missingBody != hiddenBody {
		t.Fatalf("bodies differ: %q vs %q", missingBody, hiddenBody)
	}
}

func TestUploadGate(t *testing.T) {
	tests := []struct {
		name        string
		video       models.Video
		channelId   uint
		wantCode    int
		wantMessage string
	}{
		{
			name:      "owner uploads to empty draft",
			video:     models.Video{ChannelId: 1},
			channelId: 1,
		},
		{
			name:        "other channel's video",
			video:       models.Video{ChannelId: 1},
			channelId:   2,
			wantCode:    fiber.StatusForbidden,
			wantMessage: "Not permitted to upload content for other channel's videos",
		},
		{
			name:        "content can be set only once",
			video:       models.Video{ChannelId: 1, VideoPath: "/uploads/v/123-abc.mp4"},
			channelId:   1,
			wantCode:    fiber.StatusBadRequest,
			wantMessage: "Video already has content!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uploadGate(&tt.video, tt.channelId)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("uploadGate = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("uploadGate = nil, want error")
			}
			if err.Code != tt.wantCode || err.Message != tt.wantMessage {
				t.Fatalf("uploadGate = %d %q, want %d %q", err.Code, err.Message, tt.wantCode, tt.wantMessage)
			}
		})
	}
}

func TestBlobKeys(t *testing.T) {
	tests := []struct {
		name  string
		video models.Video
		want  []string
	}{
		{
			name: "draft without content",
		},
		{
			name:  "video with content and thumbnail",
			video: models.Video{VideoPath: "/uploads/v/1-a.mp4", ThumbnailPath: "/uploads/v-t/1-a.png"},
			want:  []string{"uploads/v/1-a.mp4", "uploads/v-t/1-a.png"},
		},
		{
			name:  "content only",
			video: models.Video{VideoPath: "/uploads/v/1-a.mp4"},
			want:  []string{"uploads/v/1-a.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blobKeys(&tt.video)
			if len(got) != len(tt.want) {
				t.Fatalf("blobKeys = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("blobKeys = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDraftVideoNameFromFileName(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"cat.mp4", "cat"},
		{"my.holiday.movie.mp4", "my"},
		{"noextension", "noextension"},
	}

	for _, tt := range tests {
		got := draftName(tt.fileName)
		if got != tt.want {
			t.Errorf("draftName(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}
