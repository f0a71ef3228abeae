package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/users/profiles/model"
	"pkbm_backend/internals/features/users/profiles/service"
	helper "pkbm_backend/internals/helpers"
)

type ProfileHandler struct {
	DB *gorm.DB
}

type profileResponse struct {
	User    model.User      `json:"user"`
	Profile service.Profile `json:"profile"`
}

// GET /api/u/me/profile
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	user, p, err := service.Resolve(c.UserContext(), h.DB, userID)
	if err != nil && err != service.ErrProfileNotFound {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", profileResponse{User: user, Profile: p})
}

// GET /api/a/users/:id/profile
func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	user, p, err := service.Resolve(c.UserContext(), h.DB, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", profileResponse{User: user, Profile: p})
}

// PUT /api/a/users/:id/profile
// Body: {"role":"siswa","student":{...}}; varian harus sesuai role user.
func (h *ProfileHandler) SaveUserProfile(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var in service.Profile
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	out, err := service.Save(c.UserContext(), h.DB, userID, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "profil disimpan", out)
}
