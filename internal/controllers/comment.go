package controllers

import (
	"encoding/json"

	"videoshub-backend/internal/middleware"
	"videoshub-backend/internal/models"
	"videoshub-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

// CreateComment appends a comment to a video. Comments have no edit or
// delete path.
func CreateComment(c fiber.Ctx) error {
	var data CreateCommentRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.VideoId == 0 || data.Content == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Missing required fields",
		})
	}

	var video models.Video
	if result := repository.DB.First(&video, data.VideoId); result.Error != nil {
		return videoNotFound(c)
	}

	comment := models.VideoComment{
		ChannelId: middleware.ChannelId(c),
		VideoId:   data.VideoId,
		Content:   data.Content,
	}

	if err := repository.DB.Create(&comment).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to create comment",
		})
	}

	return c.JSON(comment)
}
