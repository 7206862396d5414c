package storage

import (
	"regexp"
	"testing"
)

func TestGenerateFileName(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{13}-[0-9a-f]{16}\.mp4$`)

	name := GenerateFileName("holiday.mp4")
	if !pattern.MatchString(name) {
		t.Fatalf("name %q does not match {epoch-millis}-{random-hex}{ext}", name)
	}

	if GenerateFileName("a.mp4") == GenerateFileName("a.mp4") {
		t.Fatal("two generated names collided")
	}
}

func TestGenerateFileNameKeepsLastExtensionOnly(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{13}-[0-9a-f]{16}\.png$`)
	if name := GenerateFileName("archive.tar.png"); !pattern.MatchString(name) {
		t.Fatalf("name %q should carry .png", name)
	}

	noExt := regexp.MustCompile(`^\d{13}-[0-9a-f]{16}$`)
	if name := GenerateFileName("noextension"); !noExt.MatchString(name) {
		t.Fatalf("name %q should have no extension", name)
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/uploads/v/123-abc.mp4", "uploads/v/123-abc.mp4"},
		{"/uploads/v-t/123-abc.png", "uploads/v-t/123-abc.png"},
		{"", ""},
		{"/somewhere/else.mp4", ""},
		{"uploads/v/no-leading-slash.mp4", ""},
	}

	for _, tt := range tests {
		if got := ObjectKey(tt.path); got != tt.want {
			t.Errorf("ObjectKey(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidFolder(t *testing.T) {
	tests := []struct {
		folder string
		want   bool
	}{
		{"v", true},
		{"v-t", true},
		{"d", true},
		{"", false},
		{"x", false},
		{"uploads", false},
	}

	for _, tt := range tests {
		if got := ValidFolder(tt.folder); got != tt.want {
			t.Errorf("ValidFolder(%q) = %v, want %v", tt.folder, got, tt.want)
		}
	}
}
