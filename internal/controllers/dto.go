package controllers

import (
	"videoshub-backend/internal/models"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"Example"`
}

type RegisterRequest struct {
	Name                 string `json:"name" example:"johndoe"`
	Email                string `json:"email" example:"user@example.com"`
	Password             string `json:"password" example:"longenoughsecret"`
	PasswordConfirmation string `json:"passwordConfirmation" example:"longenoughsecret"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"longenoughsecret"`
}

type UpdateChannelRequest struct {
	Name        string `json:"name" example:"johndoe"`
	Description string `json:"description" example:"My channel"`
	AvatarPath  string `json:"avatarPath" example:"/uploads/d/1693400000000-a1b2c3d4e5f6a7b8.png"`
}

type ChannelResponse struct {
	models.Channel
	Videos []models.Video `json:"videos"`
}

type ToggleResponse struct {
	Result string `json:"result"`
}

type CreateDraftVideoRequest struct {
	OriginalFileName string `json:"originalFileName" example:"cat.mp4"`
}

type UpdateVideoRequest struct {
	Name          string `json:"name" example:"My first video"`
	Description   string `json:"description" example:"Something here"`
	Privacy       *int   `json:"privacy" example:"2"`
	ThumbnailPath string `json:"thumbnailPath" example:"/uploads/v-t/1693400000000-a1b2c3d4e5f6a7b8.png"`
}

type VideoResponse struct {
	models.Video
	IsLiked *bool `json:"isLiked,omitempty"`
}

type CreateCommentRequest struct {
	VideoId uint   `json:"videoId" example:"1"`
	Content string `json:"content" example:"Nice one"`
}

type CreateTicketRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

type VerifyTicketResponse struct {
	RecoveryForEmail string `json:"recoveryForEmail"`
}

type UpdatePasswordRequest struct {
	Password             string `json:"password" example:"longenoughsecret"`
	PasswordConfirmation string `json:"passwordConfirmation" example:"longenoughsecret"`
}
