// Package storage provides abstractions for loading group data.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplitter/internal/models"
)

// ErrInvalidGroup is returned when group data fails the checks a collaborator
// owes the calculator: unique non-empty names and positive amounts.
var ErrInvalidGroup = errors.New("invalid group")

// GroupReader defines the interface for loading a group.
// This abstraction allows swapping input sources (files, RPC payloads, etc.)
// without changing the commands that settle groups.
type GroupReader interface {
	// ReadGroup loads and validates the group identified by source
	// (a file path for file-backed readers).
	ReadGroup(ctx context.Context, source string) (*models.Group, error)
}
