// Package store holds what the persistence backends share.
package store

import (
	"errors"
	"strings"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Supported values of the STORAGE_DRIVER setting.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// NormalizeName trims a dentist name the way it is stored and matched.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
