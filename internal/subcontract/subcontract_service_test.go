package subcontract_test

import (
	"context"
	"testing"

	"go-settlement/internal/shared/money"
	counterMock "go-settlement/internal/shared/counter/mock"
	"go-settlement/internal/subcontract"
	subcontracterrors "go-settlement/internal/subcontract/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn   func(ctx context.Context, sc *subcontract.Subcontract) error
	findAllFn  func(ctx context.Context, companyID string, filter subcontract.SubcontractFilterRequest) ([]subcontract.Subcontract, error)
	findByIDFn func(ctx context.Context, companyID, id string) (*subcontract.Subcontract, error)
	updateFn   func(ctx context.Context, sc *subcontract.Subcontract) error
	deleteFn   func(ctx context.Context, companyID, id string) error
	activeFn   func(ctx context.Context, companyID string, kind subcontract.Kind, period string) ([]subcontract.Subcontract, error)
}

func (f *fakeRepository) Create(ctx context.Context, sc *subcontract.Subcontract) error {
	if f.createFn != nil {
		return f.createFn(ctx, sc)
	}
	return nil
}

func (f *fakeRepository) FindAllByCompany(ctx context.Context, companyID string, filter subcontract.SubcontractFilterRequest) ([]subcontract.Subcontract, error) {
	return f.findAllFn(ctx, companyID, filter)
}

func (f *fakeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*subcontract.Subcontract, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) Update(ctx context.Context, sc *subcontract.Subcontract) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, sc)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeRepository) ListActive(ctx context.Context, companyID string, kind subcontract.Kind, period string) ([]subcontract.Subcontract, error) {
	return f.activeFn(ctx, companyID, kind, period)
}

func TestSubcontractService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("individual defaults to statutory rate and generated code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		counter := counterMock.NewMockRepository(ctrl)
		counter.EXPECT().GetNextValue(ctx, companyID, "subcontract_code").Return(int64(7), nil)

		var saved *subcontract.Subcontract
		repo := &fakeRepository{createFn: func(ctx context.Context, sc *subcontract.Subcontract) error {
			saved = sc
			return nil
		}}
		svc := subcontract.NewService(repo, counter)

		resp, err := svc.Create(ctx, companyID, subcontract.CreateSubcontractRequest{
			Kind:          "INDIVIDUAL",
			Name:          "Kim Designer",
			MonthlyAmount: "1,000,000",
			StartPeriod:   "2026-01",
		})

		require.NoError(t, err)
		assert.Equal(t, "SUB-000007", resp.Code)
		assert.Equal(t, int64(1_000_000), saved.MonthlyAmount)
		assert.True(t, saved.TaxRate.Equal(money.DefaultIndividualWithholdingRate))
		assert.Equal(t, subcontract.StatusActive, saved.Status)
		assert.Nil(t, resp.EndPeriod)
	})

	t.Run("percentage rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		counter := counterMock.NewMockRepository(ctrl)
		svc := subcontract.NewService(&fakeRepository{}, counter)

		resp, err := svc.Create(ctx, companyID, subcontract.CreateSubcontractRequest{
			Kind:          "individual",
			Code:          "C-1",
			Name:          "Lee",
			MonthlyAmount: "500000",
			TaxRate:       "8.8%",
			StartPeriod:   "2026-01",
		})

		require.NoError(t, err)
		assert.Equal(t, "0.088", resp.TaxRate)
		assert.Equal(t, "INDIVIDUAL", resp.Kind)
	})

	t.Run("company rejects withholding rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := subcontract.NewService(&fakeRepository{}, counterMock.NewMockRepository(ctrl))

		_, err := svc.Create(ctx, companyID, subcontract.CreateSubcontractRequest{
			Kind:          "COMPANY",
			Code:          "C-2",
			Name:          "Acme Ltd",
			MonthlyAmount: "500000",
			TaxRate:       "0.033",
			StartPeriod:   "2026-01",
		})
		assert.ErrorIs(t, err, subcontracterrors.ErrCompanyTaxRate)
	})

	t.Run("end before start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := subcontract.NewService(&fakeRepository{}, counterMock.NewMockRepository(ctrl))
		end := "2025-12"

		_, err := svc.Create(ctx, companyID, subcontract.CreateSubcontractRequest{
			Kind:          "COMPANY",
			Code:          "C-3",
			Name:          "Acme Ltd",
			MonthlyAmount: "500000",
			StartPeriod:   "2026-01",
			EndPeriod:     &end,
		})
		assert.ErrorIs(t, err, subcontracterrors.ErrInvalidPeriodRange)
	})

	t.Run("rate out of range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := subcontract.NewService(&fakeRepository{}, counterMock.NewMockRepository(ctrl))

		_, err := svc.Create(ctx, companyID, subcontract.CreateSubcontractRequest{
			Kind:          "INDIVIDUAL",
			Code:          "C-4",
			Name:          "Park",
			MonthlyAmount: "500000",
			TaxRate:       "1.5",
			StartPeriod:   "2026-01",
		})
		assert.ErrorIs(t, err, money.ErrInvalidRate)
	})
}

func TestSubcontractService_UpdateKeepsKind(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	id := uuid.New()
	existing := &subcontract.Subcontract{
		ID:          id,
		Kind:        subcontract.KindCompany,
		Name:        "Acme",
		TaxRate:     decimal.Zero,
		StartPeriod: "2025-01",
		Status:      subcontract.StatusActive,
	}
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, cid, gotID string) (*subcontract.Subcontract, error) {
			return existing, nil
		},
	}
	ctrl := gomock.NewController(t)
	svc := subcontract.NewService(repo, counterMock.NewMockRepository(ctrl))
	end := "2026-06"

	resp, err := svc.Update(ctx, companyID, id.String(), subcontract.UpdateSubcontractRequest{
		Name:          "Acme Holdings",
		MonthlyAmount: "2,500,000",
		StartPeriod:   "2025-01",
		EndPeriod:     &end,
		Status:        "INACTIVE",
	})

	require.NoError(t, err)
	assert.Equal(t, "COMPANY", resp.Kind)
	assert.Equal(t, int64(2_500_000), resp.MonthlyAmount)
	assert.Equal(t, "2026-06", *resp.EndPeriod)
	assert.Equal(t, "INACTIVE", resp.Status)
}

func TestSubcontractService_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := subcontract.NewService(&fakeRepository{
		deleteFn: func(ctx context.Context, cid, id string) error { return gorm.ErrRecordNotFound },
	}, counterMock.NewMockRepository(ctrl))

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, subcontracterrors.ErrSubcontractNotFound)

	err = svc.Delete(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, subcontracterrors.ErrSubcontractNotFound)

	_, err = svc.GetByID(context.Background(), uuid.NewString(), "bad")
	assert.ErrorIs(t, err, subcontracterrors.ErrInvalidSubcontractID)
}

func TestSubcontract_ActiveIn(t *testing.T) {
	end := "2026-03"
	sc := subcontract.Subcontract{Status: subcontract.StatusActive, StartPeriod: "2026-01", EndPeriod: &end}

	assert.False(t, sc.ActiveIn("2025-12"))
	assert.True(t, sc.ActiveIn("2026-01"))
	assert.True(t, sc.ActiveIn("2026-03"))
	assert.False(t, sc.ActiveIn("2026-04"))

	sc.EndPeriod = nil
	assert.True(t, sc.ActiveIn("2030-01"))

	sc.Status = subcontract.StatusInactive
	assert.False(t, sc.ActiveIn("2026-02"))
}
