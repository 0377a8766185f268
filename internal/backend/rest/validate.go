package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apierr "todoctl/internal/errors"
)

// check validates v against its struct tags before anything is sent.
func (c *Client) check(op string, v any) error {
	err := c.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierr.Wrap(apierr.ErrCodeInvalidRequest, op+": invalid input", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return apierr.NewWithContext(apierr.ErrCodeInvalidRequest,
		op+": "+strings.Join(fields, ", "),
		map[string]any{"operation": op})
}

func requireID(op, id string) error {
	if strings.TrimSpace(id) == "" {
		return apierr.NewWithContext(apierr.ErrCodeInvalidRequest, op+": id is required",
			map[string]any{"operation": op})
	}
	return nil
}

func requireOrder(op string, order int) error {
	if order < 0 {
		return apierr.NewWithContext(apierr.ErrCodeInvalidRequest,
			fmt.Sprintf("%s: order must be >= 0, got %d", op, order),
			map[string]any{"operation": op})
	}
	return nil
}
