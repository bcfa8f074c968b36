package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	apperrors "github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// firstQueryLookup turns the first query parameter, in request order, into
// a Lookup. Further parameters are ignored.
func firstQueryLookup(c *fiber.Ctx) domain.Lookup {
	var lookup domain.Lookup
	found := false
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if found {
			return
		}
		found = true
		lookup = domain.Lookup{Key: string(key), Value: string(value)}
	})
	return lookup
}

func intParam(c *fiber.Ctx, name string) (int, error) {
	n, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, apperrors.NewInvalidInput("Invalid ID was input.")
	}
	return n, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewInvalidInput("")
	}
	return nil
}
