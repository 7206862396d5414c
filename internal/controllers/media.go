package controllers

import (
	"videoshub-backend/internal/storage"

	"github.com/gofiber/fiber/v3"
)

// UploadMedia stores an arbitrary media blob under the requested folder
// (?folder=v|v-t|d) and returns where it lives.
// @Summary      Загрузка медиафайла
// @Tags         Media
// @Security     ApiKeyAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file   true  "Файл для загрузки"
// @Param        folder  query     string false "Папка назначения (v, v-t, d)"
// @Success      200     {object}  storage.SavedFile
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /media [post]
func UploadMedia(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "File is required",
		})
	}

	saved, err := storage.SaveFile(c.Context(), file, c.Query("folder"))
	if err != nil {
		return renderSaveError(c, err)
	}

	return c.JSON(saved)
}
