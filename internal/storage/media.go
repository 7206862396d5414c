package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const DefaultFolder = "d"

// Upload folders are keyed by purpose: v = video, v-t = thumbnail,
// d = everything else.
var uploadFolders = map[string]bool{
	"v":           true,
	"v-t":         true,
	DefaultFolder: true,
}

type SavedFile struct {
	OriginalName string  `json:"originalName"`
	MimeType     string  `json:"mimeType"`
	Duration     float64 `json:"duration"`
	OutputName   string  `json:"outputName"`
	Path         string  `json:"path"`
}

func ValidFolder(folder string) bool {
	return uploadFolders[folder]
}

// GenerateFileName builds "{epoch-millis}-{random-hex}{original-extension}".
func GenerateFileName(original string) string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), filepath.Ext(original))
}

// ObjectKey turns a root-relative path produced by SaveFile back into the
// object key it was stored under. Empty for paths that never came from us.
func ObjectKey(path string) string {
	if !strings.HasPrefix(path, "/uploads/") {
		return ""
	}
	return strings.TrimPrefix(path, "/")
}

// SaveFile sniffs the upload's mime type, probes duration for videos and
// places the blob in object storage under uploads/<folder>/. The returned
// path is a root-relative URL.
func SaveFile(ctx context.Context, file *multipart.FileHeader, folder string) (*SavedFile, error) {
	if folder == "" {
		folder = DefaultFolder
	}
	if !ValidFolder(folder) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown upload folder")
	}

	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "read upload")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rewind upload")
	}
	mimeType := http.DetectContentType(buffer[:n])

	if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "video/") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid file type. Only images and videos are available.")
	}

	outputName := GenerateFileName(file.Filename)
	objectKey := "uploads/" + folder + "/" + outputName

	var duration float64
	if strings.HasPrefix(mimeType, "video/") {
		duration, err = probeDuration(src, outputName)
		if err != nil {
			return nil, err
		}
	}

	if err := UploadToMinIO(ctx, objectKey, src, file.Size, mimeType); err != nil {
		return nil, err
	}

	return &SavedFile{
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Duration:     duration,
		OutputName:   outputName,
		Path:         "/" + objectKey,
	}, nil
}

// probeDuration spools the upload to a temp file ffprobe can seek in and
// reads container duration in seconds. Rewinds src before returning.
func probeDuration(src multipart.File, name string) (float64, error) {
	tmp, err := os.CreateTemp("", "probe-*"+filepath.Ext(name))
	if err != nil {
		return 0, errors.Wrap(err, "create probe file")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return 0, errors.Wrap(err, "spool probe file")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "rewind upload")
	}

	raw, err := ffmpeg.Probe(tmp.Name())
	if err != nil {
		return 0, errors.Wrap(err, "ffprobe")
	}

	var meta struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return 0, errors.Wrap(err, "parse ffprobe output")
	}

	duration, err := strconv.ParseFloat(meta.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse duration")
	}
	return duration, nil
}
