package installer

import (
	"errors"
	"strconv"
	"strings"
)

func validateAPIID(v string) error {
	id, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || id <= 0 {
		return errors.New("API ID must be a positive number")
	}
	return nil
}

func validateRequired(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("value is required")
	}
	return nil
}

// validateOwnerID accepts an empty value, which leaves the bot open to everyone.
func validateOwnerID(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if _, err := strconv.ParseInt(v, 10, 64); err != nil {
		return errors.New("owner ID must be a number")
	}
	return nil
}
