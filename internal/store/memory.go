package store

import (
	"context"
	"sync"

	"checkin-example-app/internal/checkin"
)

// Memory is an in-process checkin.Store. The *Err fields inject failures.
type Memory struct {
	mu      sync.RWMutex
	table   string
	records map[string]checkin.Record

	DescribeErr error
	PutErr      error
	GetErr      map[string]error
}

func NewMemory(table string) *Memory {
	return &Memory{
		table:   table,
		records: make(map[string]checkin.Record),
		GetErr:  make(map[string]error),
	}
}

func (m *Memory) Describe(ctx context.Context) (checkin.TableInfo, error) {
	if err := ctx.Err(); err != nil {
		return checkin.TableInfo{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.DescribeErr != nil {
		return checkin.TableInfo{}, m.DescribeErr
	}
	return checkin.TableInfo{
		Name:      m.table,
		Status:    "ACTIVE",
		ItemCount: int64(len(m.records)),
	}, nil
}

func (m *Memory) Put(ctx context.Context, rec checkin.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (checkin.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return checkin.Record{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.GetErr[id]; err != nil {
		return checkin.Record{}, false, err
	}
	rec, ok := m.records[id]
	return rec, ok, nil
}

// Len is the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
