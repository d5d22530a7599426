package exts

import (
	"github.com/gofiber/fiber/v2"
)

// BindForm parses the request body into out. Field rules are checked by the
// actions so the caller gets the form wording back.
func BindForm(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// Reply answers with the status the action picked.
func Reply(c *fiber.Ctx, code int, body any) error {
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(body)
}
