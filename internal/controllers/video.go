package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"videoshub-backend/internal/middleware"
	"videoshub-backend/internal/models"
	"videoshub-backend/internal/repository"
	"videoshub-backend/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetVideos returns all public videos, newest first.
func GetVideos(c fiber.Ctx) error {
	return listPublicVideos(c, "")
}

// SearchVideos returns public videos whose name matches ?term=, sorted by
// name.
func SearchVideos(c fiber.Ctx) error {
	return listPublicVideos(c, c.Query("term"))
}

func listPublicVideos(c fiber.Ctx, term string) error {
	query := repository.DB.
		Preload("Channel").
		Preload("Comments.Channel").
		Where("privacy = ?", models.PrivacyPublic)

	if term != "" {
		query = query.Where("name ILIKE ?", "%"+term+"%").Order("name ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to fetch videos",
		})
	}

	return c.JSON(videos)
}

// MostPopular returns public videos that crossed the popularity floor,
// most viewed first.
func MostPopular(c fiber.Ctx) error {
	var videos []models.Video
	err := repository.DB.
		Preload("Channel").
		Preload("Comments.Channel").
		Where("privacy = ? AND views > ?", models.PrivacyPublic, 10).
		Order("views DESC").
		Find(&videos).Error
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to fetch videos",
		})
	}

	return c.JSON(videos)
}

// LikedVideos returns the like rows of the authenticated channel with their
// videos, newest like first.
func LikedVideos(c fiber.Ctx) error {
	channelId := middleware.ChannelId(c)

	var likes []models.VideoLike
	err := repository.DB.
		Preload("Video.Channel").
		Where("channel_id = ?", channelId).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to fetch liked videos",
		})
	}

	return c.JSON(likes)
}

// GetVideo returns a single video by id. A non-public video requested by
// anyone but its owner renders the exact same response as a nonexistent id,
// so probing ids leaks nothing. Authenticated viewers also get isLiked.
func GetVideo(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	video, err := loadVideo(uint(id))
	if err != nil {
		return videoNotFound(c)
	}

	viewerId := middleware.ChannelId(c)

	if !visibleTo(video, viewerId) {
		return videoNotFound(c)
	}

	if viewerId == 0 {
		return c.JSON(VideoResponse{Video: *video})
	}

	var count int64
	repository.DB.Model(&models.VideoLike{}).
		Where("channel_id = ? AND video_id = ?", viewerId, video.Id).
		Count(&count)
	isLiked := count > 0

	return c.JSON(VideoResponse{
		Video:   *video,
		IsLiked: &isLiked,
	})
}

// CreateDraftVideo registers a video record before its content exists.
// Drafts always start private; the name is the file name up to the first
// dot.
func CreateDraftVideo(c fiber.Ctx) error {
	var data CreateDraftVideoRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.OriginalFileName == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Incorrect data",
		})
	}

	video := models.Video{
		ChannelId:        middleware.ChannelId(c),
		Privacy:          models.PrivacyPrivate,
		Name:             draftName(data.OriginalFileName),
		OriginalFileName: data.OriginalFileName,
	}

	if err := repository.DB.Create(&video).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to create video",
		})
	}

	return c.JSON(video)
}

// UploadVideo stores the binary content of a draft video. Content can be
// set exactly once.
// @Summary      Загрузить видеофайл для чернового видео
// @Tags         Videos
// @Security     ApiKeyAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        video    formData file   true "Видеофайл"
// @Param        videoId  formData int    true "Id видео"
// @Success      200      {object}  models.Video
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /videos/upload [post]
func UploadVideo(c fiber.Ctx) error {
	file, err := c.FormFile("video")
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Video file is required",
		})
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "video/") {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Only videos available.",
		})
	}

	id, err := strconv.ParseUint(c.FormValue("videoId"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	video, err := loadVideo(uint(id))
	if err != nil {
		return videoNotFound(c)
	}

	if gateErr := uploadGate(video, middleware.ChannelId(c)); gateErr != nil {
		c.Status(gateErr.Code)
		return c.JSON(ErrorResponse{
			Message: gateErr.Message,
		})
	}

	saved, err := storage.SaveFile(c.Context(), file, "v")
	if err != nil {
		return renderSaveError(c, err)
	}

	video.VideoPath = saved.Path
	video.OriginalFileName = saved.OriginalName
	video.Duration = saved.Duration

	if err := repository.DB.Save(video).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to update video",
		})
	}

	return c.JSON(video)
}

// UploadThumbnail stores a preview image for an owned video.
func UploadThumbnail(c fiber.Ctx) error {
	file, err := c.FormFile("thumbnail")
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Thumbnail file is required",
		})
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Only images available.",
		})
	}

	id, err := strconv.ParseUint(c.FormValue("videoId"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	video, err := loadVideo(uint(id))
	if err != nil {
		return videoNotFound(c)
	}

	if video.ChannelId != middleware.ChannelId(c) {
		c.Status(fiber.StatusForbidden)
		return c.JSON(ErrorResponse{
			Message: "Not permitted to upload thumbnail for other channel's videos",
		})
	}

	saved, err := storage.SaveFile(c.Context(), file, "v-t")
	if err != nil {
		return renderSaveError(c, err)
	}

	video.ThumbnailPath = saved.Path

	if err := repository.DB.Save(video).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to update video",
		})
	}

	return c.JSON(video)
}

// UpdateVideo edits name, description, privacy or thumbnail of an owned
// video. The draft must have content before it can be edited.
func UpdateVideo(c fiber.Ctx) error {
	var data UpdateVideoRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.Name == "" && data.Description == "" && data.Privacy == nil && data.ThumbnailPath == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Nothing changing.",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	video, err := loadVideo(uint(id))
	if err != nil {
		return videoNotFound(c)
	}

	if video.ChannelId != middleware.ChannelId(c) {
		c.Status(fiber.StatusForbidden)
		return c.JSON(ErrorResponse{
			Message: "Not permitted to update other channel's videos",
		})
	}

	if video.VideoPath == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Firstly you need to upload content for this video. POST /videos/upload",
		})
	}

	if data.Name != "" {
		video.Name = data.Name
	}
	if data.Description != "" {
		video.Description = data.Description
	}
	if data.Privacy != nil {
		if *data.Privacy < models.PrivacyPrivate || *data.Privacy > models.PrivacyPublic {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(ErrorResponse{
				Message: "Invalid privacy value",
			})
		}
		video.Privacy = *data.Privacy
	}
	if data.ThumbnailPath != "" {
		video.ThumbnailPath = data.ThumbnailPath
	}

	if err := repository.DB.Save(video).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to update video",
		})
	}

	return c.JSON(video)
}

// UpdateViews bumps the view counter. No auth: anyone who watched counts.
func UpdateViews(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	var video models.Video
	if result := repository.DB.First(&video, uint(id)); result.Error != nil {
		return videoNotFound(c)
	}

	if err := repository.DB.Model(&video).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to update view count",
		})
	}

	return c.JSON(MessageResponse{
		Message: fmt.Sprintf("Views on video %q was incremented by 1", video.Name),
	})
}

// UpdateLikes toggles the like edge between the authenticated channel and
// the video, atomically with the like counter.
func UpdateLikes(c fiber.Ctx) error {
	channelId := middleware.ChannelId(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	result, err := repository.ToggleVideoLike(repository.DB, channelId, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return videoNotFound(c)
		}
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to toggle like",
		})
	}

	return c.JSON(ToggleResponse{
		Result: result,
	})
}

// DeleteVideo removes an owned video.
func DeleteVideo(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid video id",
		})
	}

	video, err := loadVideo(uint(id))
	if err != nil {
		return videoNotFound(c)
	}

	if video.ChannelId != middleware.ChannelId(c) {
		c.Status(fiber.StatusForbidden)
		return c.JSON(ErrorResponse{
			Message: "Not permitted to delete other channel's videos",
		})
	}

	if err := repository.DB.Delete(video).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to delete video",
		})
	}

	// The record is gone, the blobs must not outlive it. A storage failure
	// here only leaves an orphan, so it is logged rather than surfaced.
	for _, key := range blobKeys(video) {
		if err := storage.DeleteFromMinIO(c.Context(), key); err != nil {
			logrus.Warnf("failed to delete blob %s of video %d: %v", key, video.Id, err)
		}
	}

	return c.JSON(MessageResponse{
		Message: "Video successfully deleted",
	})
}

// blobKeys lists the object keys of everything a video stores.
func blobKeys(video *models.Video) []string {
	var keys []string
	for _, path := range []string{video.VideoPath, video.ThumbnailPath} {
		if key := storage.ObjectKey(path); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// draftName is the uploaded file name up to the first dot.
func draftName(fileName string) string {
	return strings.SplitN(fileName, ".", 2)[0]
}

func loadVideo(id uint) (*models.Video, error) {
	var video models.Video
	err := repository.DB.
		Preload("Channel").
		Preload("Comments.Channel").
		First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// uploadGate guards content uploads. Only the owner may upload, and only
// while the draft still has no content.
func uploadGate(video *models.Video, channelId uint) *fiber.Error {
	if video.ChannelId != channelId {
		return fiber.NewError(fiber.StatusForbidden, "Not permitted to upload content for other channel's videos")
	}
	if video.VideoPath != "" {
		return fiber.NewError(fiber.StatusBadRequest, "Video already has content!")
	}
	return nil
}

// visibleTo is the privacy gate: public videos are visible to everyone,
// everything else only to the owner.
func visibleTo(video *models.Video, viewerId uint) bool {
	return video.Privacy == models.PrivacyPublic || video.ChannelId == viewerId
}

// videoNotFound renders the one and only "missing video" response. Private
// and nonexistent videos must be indistinguishable, so every handler goes
// through here.
func videoNotFound(c fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return c.JSON(ErrorResponse{
		Message: "Video doesn't exist. 😓",
	})
}

// renderSaveError maps media pipeline failures onto the response, keeping
// client errors (bad folder, wrong type) distinct from storage failures.
func renderSaveError(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		c.Status(fiberErr.Code)
		return c.JSON(ErrorResponse{
			Message: fiberErr.Message,
		})
	}

	c.Status(fiber.StatusInternalServerError)
	return c.JSON(ErrorResponse{
		Message: "Failed to save file",
	})
}
