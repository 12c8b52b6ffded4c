package settlement

import (
	"context"
	"strings"
	"time"

	settlementerrors "go-settlement/internal/settlement/errors"

	"go.uber.org/zap"
)

// OverrideFields carries an administrative edit. Nil fields are left as is.
// ExpectedVersion 0 means the version read at the start of the call.
type OverrideFields struct {
	Amount          *int64
	PaidAt          *time.Time
	Status          *Status
	Memo            *string
	ExpectedVersion int64
}

func (f OverrideFields) empty() bool {
	return f.Amount == nil && f.PaidAt == nil && f.Status == nil && f.Memo == nil
}

type OverrideOutcome struct {
	Record        *Settlement
	PreviousFinal int64
	AmountChanged bool
	StatusChanged bool
}

// Lifecycle moves records from SCHEDULED to PAID and applies overrides.
// Writes are guarded by the record version; a lost race returns ErrConflict.
type Lifecycle struct {
	store  Store
	clock  Clock
	logger *zap.Logger
}

func NewLifecycle(store Store, clock Clock, logger ...*zap.Logger) *Lifecycle {
	l := zap.L().Named("settlement.lifecycle")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settlement.lifecycle")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Lifecycle{store: store, clock: clock, logger: l}
}

func (l *Lifecycle) load(ctx context.Context, companyID, id string, expectedVersion int64) (*Settlement, int64, error) {
	rec, err := l.store.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, 0, err
	}
	if expectedVersion == 0 {
		return rec, rec.Version, nil
	}
	if rec.Version != expectedVersion {
		return nil, 0, settlementerrors.ErrConflict
	}
	return rec, expectedVersion, nil
}

func (l *Lifecycle) MarkPaid(ctx context.Context, companyID, id string, paidAt *time.Time, expectedVersion int64) (*Settlement, error) {
	rec, version, err := l.load(ctx, companyID, id, expectedVersion)
	if err != nil {
		return nil, err
	}
	if rec.Status != StatusScheduled {
		return nil, settlementerrors.ErrInvalidTransition
	}

	at := l.clock.Now()
	if paidAt != nil {
		at = paidAt.UTC()
	}
	rec.Status = StatusPaid
	rec.PaidAt = &at

	if err := l.store.UpdateVersioned(ctx, rec, version); err != nil {
		return nil, err
	}

	l.logger.Info("settlement marked paid",
		zap.String("settlement_id", id),
		zap.String("company_id", companyID),
		zap.Time("paid_at", at),
	)
	return rec, nil
}

func (l *Lifecycle) Override(ctx context.Context, companyID, id string, f OverrideFields) (OverrideOutcome, error) {
	if f.Amount != nil && *f.Amount < 0 {
		return OverrideOutcome{}, settlementerrors.ErrInvalidAmount
	}

	rec, version, err := l.load(ctx, companyID, id, f.ExpectedVersion)
	if err != nil {
		return OverrideOutcome{}, err
	}
	out := OverrideOutcome{Record: rec, PreviousFinal: rec.FinalAmount}
	if f.empty() {
		return out, nil
	}

	targetStatus := rec.Status
	if f.Status != nil {
		targetStatus = *f.Status
	}
	switch {
	case rec.Status == StatusPaid && targetStatus == StatusScheduled:
		return OverrideOutcome{}, settlementerrors.ErrInvalidTransition
	case targetStatus == StatusScheduled && f.PaidAt != nil:
		return OverrideOutcome{}, settlementerrors.ErrPaidAtRequiresPaidStatus
	}

	if targetStatus == StatusPaid {
		switch {
		case f.PaidAt != nil:
			at := f.PaidAt.UTC()
			rec.PaidAt = &at
		case rec.PaidAt == nil:
			at := l.clock.Now()
			rec.PaidAt = &at
		}
		out.StatusChanged = rec.Status != StatusPaid
		rec.Status = StatusPaid
	}

	if f.Amount != nil && *f.Amount != rec.FinalAmount {
		rec.FinalAmount = *f.Amount
		rec.AmountOverridden = true
		out.AmountChanged = true
	}

	if f.Memo != nil {
		memo := strings.TrimSpace(*f.Memo)
		if memo == "" {
			rec.Memo = nil
		} else {
			rec.Memo = &memo
		}
	}

	if err := l.store.UpdateVersioned(ctx, rec, version); err != nil {
		return OverrideOutcome{}, err
	}

	if out.AmountChanged {
		l.logger.Warn("settlement amount overridden",
			zap.String("settlement_id", id),
			zap.String("company_id", companyID),
			zap.String("category", string(rec.Category)),
			zap.String("period", string(rec.Period)),
			zap.Int64("base_amount", rec.BaseAmount),
			zap.Int64("deduction_amount", rec.DeductionAmount),
			zap.Int64("computed_final", rec.ComputedFinal()),
			zap.Int64("previous_final", out.PreviousFinal),
			zap.Int64("override_final", rec.FinalAmount),
		)
	}
	return out, nil
}
