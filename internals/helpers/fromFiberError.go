package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromError mengubah error dari service/transaction menjadi response JSON konsisten:
// *ValidationError → 422, *fiber.Error → kode aslinya, sisanya 500 generik.
func FromError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve.Fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
