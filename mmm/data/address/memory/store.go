package memory

import (
	"context"
	"sync"
	"time"

	"github.com/the-1ndex/mmm/mmm/data/address"
)

type store struct {
	mu      sync.Mutex
	records []*address.Record
	last    uint64
}

// New returns a new in memory address.Store
func New() address.Store {
	return &store{}
}

func (s *store) Put(_ context.Context, record *address.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByAddress(record.Address); item != nil {
		if !item.IsEquivalent(record) {
			return address.ErrAlreadyExists
		}
		record.Id = item.Id
		record.CreatedAt = item.CreatedAt
		return nil
	}

	s.last++
	record.Id = s.last
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	cloned := record.Clone()
	s.records = append(s.records, &cloned)
	return nil
}

func (s *store) GetByAddress(_ context.Context, value string) (*address.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(value)
	if item == nil {
		return nil, address.ErrNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

func (s *store) GetAllByPool(_ context.Context, pool string) ([]*address.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []*address.Record
	for _, item := range s.records {
		if item.Pool != pool {
			continue
		}

		cloned := item.Clone()
		res = append(res, &cloned)
	}

	if len(res) == 0 {
		return nil, address.ErrNotFound
	}
	return res, nil
}

func (s *store) findByAddress(value string) *address.Record {
	for _, item := range s.records {
		if item.Address == value {
			return item
		}
	}
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}
