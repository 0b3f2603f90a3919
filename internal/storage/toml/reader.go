// Package toml reads group files written in TOML.
//
// A group file looks like:
//
//	name = "Hanoi trip"
//	participants = ["An", "Binh", "Chi"]
//
//	[[expenses]]
//	description = "Dinner"
//	amount = "30.00"
//	payer = "An"
//	sharers = ["An", "Binh", "Chi"]   # omit to split among everyone
//
//	[[payments]]
//	from = "Binh"
//	to = "An"
//	amount = 10
package toml

import (
	"bytes"
	"context"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

var _ storage.GroupReader = (*Reader)(nil)

// Reader loads groups from TOML files. It never writes.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadGroup reads and validates the group file at path.
func (r *Reader) ReadGroup(ctx context.Context, path string) (*models.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read group file: %w", err)
	}

	group, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return group, nil
}

// Decode parses a group document.
func Decode(data []byte) (*models.Group, error) {
	var file fileSchema
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode group file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	return file.toGroup()
}
