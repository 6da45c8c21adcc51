package address

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("derived address not found")
	ErrAlreadyExists = errors.New("derived address already exists with different inputs")
)

type Store interface {
	// Put saves a derived address record. Putting a record equivalent to the
	// stored one succeeds and populates Id and CreatedAt from storage.
	// ErrAlreadyExists is returned when the address is stored with different
	// inputs.
	Put(ctx context.Context, record *Record) error

	// GetByAddress gets a record by its derived address
	GetByAddress(ctx context.Context, address string) (*Record, error)

	// GetAllByPool gets every record derived from the given pool address, in
	// insertion order. ErrNotFound is returned when there are none.
	GetAllByPool(ctx context.Context, pool string) ([]*Record, error)
}
