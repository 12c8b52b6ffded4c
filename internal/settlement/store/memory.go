// Package store holds the in-memory settlement store used for local runs
// and tests. It enforces the same uniqueness key as the Postgres index.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-settlement/internal/settlement"
	settlementerrors "go-settlement/internal/settlement/errors"
)

type Memory struct {
	mu    sync.RWMutex
	byID  map[string]*settlement.Settlement
	byKey map[string]string
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		byID:  make(map[string]*settlement.Settlement),
		byKey: make(map[string]string),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

var _ settlement.Store = (*Memory)(nil)

func (m *Memory) InsertIfAbsent(ctx context.Context, s *settlement.Settlement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := s.UniqueKey()
	if _, taken := m.byKey[key]; taken {
		return settlementerrors.ErrDuplicateObligation
	}
	cp := *s
	m.byID[s.ID.String()] = &cp
	m.byKey[key] = s.ID.String()
	return nil
}

func (m *Memory) ExistingWorkerKeys(
	ctx context.Context,
	companyID string,
	category settlement.Category,
	period settlement.Period,
) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]struct{})
	for _, s := range m.byID {
		if s.CompanyID.String() == companyID && s.Category == category && s.Period == period {
			out[s.WorkerKey] = struct{}{}
		}
	}
	return out, nil
}

func (m *Memory) FindByID(ctx context.Context, companyID, id string) (*settlement.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byID[id]
	if !ok || s.CompanyID.String() != companyID {
		return nil, settlementerrors.ErrSettlementNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *Memory) UpdateVersioned(ctx context.Context, s *settlement.Settlement, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.byID[s.ID.String()]
	if !ok || cur.CompanyID != s.CompanyID || cur.Version != expectedVersion {
		return settlementerrors.ErrConflict
	}

	cur.FinalAmount = s.FinalAmount
	cur.AmountOverridden = s.AmountOverridden
	cur.Status = s.Status
	cur.PaidAt = s.PaidAt
	cur.Memo = s.Memo
	cur.Version = expectedVersion + 1
	cur.UpdatedAt = m.now()

	s.Version = cur.Version
	s.UpdatedAt = cur.UpdatedAt
	return nil
}

func (m *Memory) List(ctx context.Context, companyID string, filter settlement.ListFilter) ([]settlement.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]settlement.Settlement, 0)
	for _, s := range m.byID {
		if s.CompanyID.String() != companyID {
			continue
		}
		if filter.Period != nil && s.Period != *filter.Period {
			continue
		}
		if filter.Category != nil && s.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.WorkerName), search) &&
			!strings.Contains(string(s.Period), search) {
			continue
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period > out[j].Period
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].WorkerName < out[j].WorkerName
	})
	return out, nil
}

// Delete drops the record and frees its key, matching the partial index.
func (m *Memory) Delete(ctx context.Context, companyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byID[id]
	if !ok || s.CompanyID.String() != companyID {
		return settlementerrors.ErrSettlementNotFound
	}
	delete(m.byKey, s.UniqueKey())
	delete(m.byID, id)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
