package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid %s", name), nil)
	}
	return id, nil
}
