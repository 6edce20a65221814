package cache

import "errors"

// ErrEmptyKey is returned when an operation is given an empty key.
var ErrEmptyKey = errors.New("cache key is empty")

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
