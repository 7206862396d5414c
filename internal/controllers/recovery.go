package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/textproto"
	"time"

	"videoshub-backend/internal/config"
	"videoshub-backend/internal/mail"
	"videoshub-backend/internal/models"
	"videoshub-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RecoveryCookie is separate from the session cookie and carries the
// plaintext ticket hash.
const RecoveryCookie = "recovery_hash"

// CreateTicket issues a time-boxed password recovery ticket, mails the
// recovery link and pins the hash into a dedicated cookie.
// @Summary      Создать заявку на восстановление пароля
// @Tags         Recovery
// @Accept       json
// @Produce      json
// @Param        data  body      CreateTicketRequest true "Почта канала"
// @Success      201   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /recovery/create-ticket [post]
func CreateTicket(sender mail.Sender) fiber.Handler {
	return func(c fiber.Ctx) error {
		var data CreateTicketRequest

		if err := json.Unmarshal(c.Body(), &data); err != nil {
			return err
		}

		if data.Email == "" {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(ErrorResponse{
				Message: "Incorrect data",
			})
		}

		var channel models.Channel
		repository.DB.Where("email = ?", data.Email).First(&channel)

		if channel.Id == 0 {
			c.Status(fiber.StatusNotFound)
			return c.JSON(ErrorResponse{
				Message: "Channel does not exist",
			})
		}

		hash := generateTicketHash()
		link := recoveryLink(hash)

		if err := mail.SendRecovery(sender, channel.Email, link); err != nil {
			var smtpErr *textproto.Error
			if errors.As(err, &smtpErr) && smtpErr.Code == 550 {
				c.Status(fiber.StatusBadRequest)
				return c.JSON(ErrorResponse{
					Message: "Mailbox unavailable (mailbox not found, no access).",
				})
			}

			logrus.Errorf("recovery mail to %s failed: %v", channel.Email, err)
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Unhandled error on creating ticket.",
			})
		}

		ticket := models.RecoveryTicket{
			Hash:      hash,
			Email:     channel.Email,
			ExpiresAt: time.Now().Add(config.App.RecoveryTTL).UnixMilli(),
		}

		if err := repository.DB.Create(&ticket).Error; err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(ErrorResponse{
				Message: "Failed to create ticket",
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     RecoveryCookie,
			Value:    hash,
			Expires:  time.Now().Add(config.App.RecoveryTTL),
			HTTPOnly: true,
		})

		c.Status(fiber.StatusCreated)
		return c.JSON(MessageResponse{
			Message: "Ticket created",
		})
	}
}

// VerifyTicket reports whether the caller's recovery ticket is still usable
// and which email it recovers. It never consumes the ticket.
func VerifyTicket(c fiber.Ctx) error {
	hash := c.Cookies(RecoveryCookie)
	if hash == "" {
		c.Status(fiber.StatusForbidden)
		return c.JSON(ErrorResponse{
			Message: "Forbidden",
		})
	}

	var ticket models.RecoveryTicket
	repository.DB.Where("hash = ?", hash).First(&ticket)

	if ticket.Id == 0 || ticketExpired(&ticket, time.Now()) {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Ticket doesn't exist or expired.",
		})
	}

	return c.JSON(VerifyTicketResponse{
		RecoveryForEmail: ticket.Email,
	})
}

// UpdatePassword consumes the ticket: rewrites the channel's password,
// deletes the ticket and clears the recovery cookie. Expiry is re-checked
// here as well, the daily sweep is only hygiene.
func UpdatePassword(c fiber.Ctx) error {
	hash := c.Cookies(RecoveryCookie)
	if hash == "" {
		c.Status(fiber.StatusForbidden)
		return c.JSON(ErrorResponse{
			Message: "Forbidden",
		})
	}

	var data UpdatePasswordRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.Password == "" {
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

	var ticket models.RecoveryTicket
	repository.DB.Where("hash = ?", hash).First(&ticket)

	if ticket.Id == 0 || ticketExpired(&ticket, time.Now()) {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Ticket doesn't exist or expired.",
		})
	}

	var channel models.Channel
	repository.DB.Where("email = ?", ticket.Email).First(&channel)

	if channel.Id == 0 {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Channel does not exist",
		})
	}

	password, _ := bcrypt.GenerateFromPassword([]byte(data.Password), 14)
	channel.Password = password

	if err := repository.DB.Save(&channel).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to update password",
		})
	}

	if err := repository.DB.Delete(&ticket).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(ErrorResponse{
			Message: "Failed to consume ticket",
		})
	}

	c.ClearCookie(RecoveryCookie)

	return c.JSON(MessageResponse{
		Message: "Password has been changed.",
	})
}

// ticketExpired reports whether now has reached the ticket's expiry.
func ticketExpired(ticket *models.RecoveryTicket, now time.Time) bool {
	return ticket.ExpiresAt <= now.UnixMilli()
}

// generateTicketHash returns an opaque token safe to embed in a URL.
func generateTicketHash() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// recoveryLink points at the frontend recovery page; the first CORS origin
// is the canonical frontend.
func recoveryLink(hash string) string {
	origin := "http://localhost:3000"
	if len(config.App.CorsWhitelist) > 0 {
		origin = config.App.CorsWhitelist[0]
	}
	return origin + "/recovery/" + hash
}
