package settlement

import (
	"time"

	settlementerrors "go-settlement/internal/settlement/errors"
)

const periodLayout = "2006-01"

// Period is a calendar month in YYYY-MM form. The fixed-width layout keeps
// string order equal to calendar order.
type Period string

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return "", settlementerrors.ErrInvalidPeriodFormat
	}
	return Period(t.Format(periodLayout)), nil
}

func PeriodOf(t time.Time) Period {
	return Period(t.Format(periodLayout))
}

func (p Period) String() string {
	return string(p)
}

func (p Period) Valid() bool {
	_, err := time.Parse(periodLayout, string(p))
	return err == nil
}

// Start is midnight UTC of the first day of the month.
func (p Period) Start() time.Time {
	t, _ := time.Parse(periodLayout, string(p))
	return t
}

// End is midnight UTC of the last day of the month.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

func (p Period) Prev() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

func (p Period) Compare(other Period) int {
	switch {
	case p < other:
		return -1
	case p > other:
		return 1
	default:
		return 0
	}
}

func (p Period) Before(other Period) bool { return p < other }

func (p Period) After(other Period) bool { return p > other }
