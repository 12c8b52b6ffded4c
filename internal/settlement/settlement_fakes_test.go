package settlement_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go-settlement/internal/employee"
	"go-settlement/internal/settlement"
	"go-settlement/internal/settlement/store"
	"go-settlement/internal/subcontract"

	"github.com/shopspring/decimal"
)

type fakeEmployees struct {
	rows  []employee.ActiveRegular
	err   error
	calls atomic.Int32
}

func (f *fakeEmployees) ListActiveRegular(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]employee.ActiveRegular, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeSubcontracts struct {
	rows map[subcontract.Kind][]subcontract.Subcontract
	err  error
}

func (f *fakeSubcontracts) ListActive(ctx context.Context, companyID string, kind subcontract.Kind, period string) ([]subcontract.Subcontract, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[kind], nil
}

// staleStore reports no existing keys so every insert races the index.
type staleStore struct {
	*store.Memory
}

func (s staleStore) ExistingWorkerKeys(ctx context.Context, companyID string, category settlement.Category, period settlement.Period) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

type failingInsertStore struct {
	*store.Memory
	err error
}

func (s failingInsertStore) InsertIfAbsent(ctx context.Context, rec *settlement.Settlement) error {
	return s.err
}

func decimalRate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func errorIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
