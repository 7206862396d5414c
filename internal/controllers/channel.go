package controllers

import (
	"errors"
	"strconv"

	"videoshub-backend/internal/middleware"
	"videoshub-backend/internal/models"
	"videoshub-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

// GetChannels lists every channel with its public videos attached.
func GetChannels(c fiber.Ctx) error {
	var channels []models.Channel
	if err := repository.DB.Find(&channels).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to fetch channels",
		})
	}

	response := make([]ChannelResponse, 0, len(channels))
	for _, channel := range channels {
		videos, err := channelVideos(channel.Id, false)
		if err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Failed to fetch videos",
			})
		}
		response = append(response, ChannelResponse{Channel: channel, Videos: videos})
	}

	return c.JSON(response)
}

// GetChannel returns someone's channel by id. Only public videos are
// attached; drafts and private videos stay in the studio view.
func GetChannel(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid channel id",
		})
	}

	var channel models.Channel
	if result := repository.DB.First(&channel, uint(id)); result.Error != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Channel not found",
		})
	}

	videos, err := channelVideos(channel.Id, false)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to fetch videos",
		})
	}

	return c.JSON(ChannelResponse{
		Channel: channel,
		Videos:  videos,
	})
}

// Subscribe toggles the subscription edge from the authenticated channel to
// :id and keeps the subscriber counter in step. The check and both writes
// run in one transaction.
// @Summary      Подписаться или отписаться от канала
// @Tags         Channels
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id    path      int true "Id канала"
// @Success      200   {object}  ToggleResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /channels/subscribe/{id} [patch]
func Subscribe(c fiber.Ctx) error {
	channelId := middleware.ChannelId(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Invalid channel id",
		})
	}

	if uint(id) == channelId {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "You cannot subscribe to yourself",
		})
	}

	result, err := repository.ToggleSubscription(repository.DB, channelId, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(fiber.StatusNotFound)
			return c.JSON(ErrorResponse{
				Message: "Provided channel to subscribe does not exist",
			})
		}
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to toggle subscription",
		})
	}

	return c.JSON(ToggleResponse{
		Result: result,
	})
}

// channelVideos loads a channel's videos, newest first. Studio view keeps
// every privacy state, the public view keeps public ones only.
func channelVideos(channelId uint, studio bool) ([]models.Video, error) {
	query := repository.DB.Where("channel_id = ?", channelId).Order("created_at DESC")
	if !studio {
		query = query.Where("privacy = ?", models.PrivacyPublic)
	}

	var videos []models.Video
	err := query.Find(&videos).Error
	return videos, err
}
