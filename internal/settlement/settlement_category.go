package settlement

import (
	"strings"

	settlementerrors "go-settlement/internal/settlement/errors"
)

// Category is the worker category a settlement belongs to. The set is closed.
type Category string

const (
	CategoryRegular               Category = "REGULAR"
	CategoryDaily                 Category = "DAILY"
	CategorySubcontractIndividual Category = "SUBCONTRACT_INDIVIDUAL"
	CategorySubcontractCompany    Category = "SUBCONTRACT_COMPANY"
)

// AllCategories is the order used when generating without a category.
func AllCategories() []Category {
	return []Category{
		CategoryRegular,
		CategoryDaily,
		CategorySubcontractIndividual,
		CategorySubcontractCompany,
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", settlementerrors.ErrInvalidCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRegular, CategoryDaily, CategorySubcontractIndividual, CategorySubcontractCompany:
		return true
	}
	return false
}

// RequiresWorkerID reports whether records of this category must reference a
// directory entry. Daily workers may be free-text.
func (c Category) RequiresWorkerID() bool {
	return c != CategoryDaily
}

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusPaid      Status = "PAID"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusScheduled, StatusPaid:
		return st, nil
	}
	return "", settlementerrors.ErrInvalidStatus
}

type Origin string

const (
	OriginGenerated Origin = "GENERATED"
	OriginManual    Origin = "MANUAL"
)
