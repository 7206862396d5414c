package controllers

import (
	"encoding/json"

	"videoshub-backend/internal/middleware"
	"videoshub-backend/internal/models"
	"videoshub-backend/internal/repository"
	"videoshub-backend/internal/session"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a channel and logs it in right away.
// @Summary      Регистрация канала
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        data  body      RegisterRequest true "Данные регистрации"
// @Success      200   {object}  models.Channel
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/register [post]
func Register(sessions *session.Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		var data RegisterRequest

		if err := json.Unmarshal(c.Body(), &data); err != nil {
			return err
		}

		if data.Name == "" || data.Email == "" || data.Password == "" {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(ErrorResponse{
				Message: "Incorrect data",
			})
		}

		if data.Password != data.PasswordConfirmation {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(ErrorResponse{
				Message: "Passwords didn't match",
			})
		}

		var existing models.Channel
		if result := repository.DB.Where("email = ? OR name = ?", data.Email, data.Name).First(&existing); result.Error == nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(ErrorResponse{
				Message: "Channel already exists",
			})
		}

		password, _ := bcrypt.GenerateFromPassword([]byte(data.Password), 14)

		channel := models.Channel{
			Name:     data.Name,
			Email:    data.Email,
			Password: password,
		}

		if err := repository.DB.Create(&channel).Error; err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Failed to create channel",
			})
		}

		if err := sessions.Save(c, channel.Id); err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Could not save session",
			})
		}

		return c.JSON(channel)
	}
}

// Login opens a session for an existing channel.
// @Summary      Логин
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        data  body      LoginRequest true "Почта и пароль"
// @Success      200   {object}  models.Channel
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /auth/login [post]
func Login(sessions *session.Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		var data LoginRequest

		if err := json.Unmarshal(c.Body(), &data); err != nil {
			return err
		}

		var channel models.Channel
		repository.DB.Where("email = ?", data.Email).First(&channel)

		if channel.Id == 0 {
			c.Status(fiber.StatusNotFound)
			return c.JSON(ErrorResponse{
				Message: "Channel does not exist",
			})
		}

		if err := bcrypt.CompareHashAndPassword(channel.Password, []byte(data.Password)); err != nil {
			c.Status(fiber.StatusUnauthorized)
			return c.JSON(ErrorResponse{
				Message: "Unauthorized",
			})
		}

		if err := sessions.Save(c, channel.Id); err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Could not save session",
			})
		}

		return c.JSON(channel)
	}
}

// Logout drops the session entry and clears the cookie.
func Logout(sessions *session.Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := sessions.Destroy(c); err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Could not delete session",
			})
		}

		return c.JSON(MessageResponse{
			Message: "Logged out",
		})
	}
}

// MyChannel returns the authenticated channel with all of its videos,
// drafts and private ones included.
func MyChannel(c fiber.Ctx) error {
	channelId := middleware.ChannelId(c)

	var channel models.Channel
	if result := repository.DB.First(&channel, channelId); result.Error != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Channel not found",
		})
	}

	videos, err := channelVideos(channelId, true)
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

// UpdateMyChannel edits name, description and avatar of the authenticated
// channel.
func UpdateMyChannel(c fiber.Ctx) error {
	var data UpdateChannelRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	channelId := middleware.ChannelId(c)

	var channel models.Channel
	if result := repository.DB.First(&channel, channelId); result.Error != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Channel not found",
		})
	}

	if data.Name != "" {
		channel.Name = data.Name
	}
	if data.Description != "" {
		channel.Description = data.Description
	}
	if data.AvatarPath != "" {
		channel.AvatarPath = data.AvatarPath
	}

	if err := repository.DB.Save(&channel).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to update channel",
		})
	}

	return c.JSON(channel)
}
