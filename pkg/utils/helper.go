package utils

import (
	"fmt"
	"strconv"
)

// ParseID converts a path segment into a movie id.
func ParseID(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("invalid movie id: empty")
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid movie id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %d", id)
	}

	return id, nil
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return result
}
