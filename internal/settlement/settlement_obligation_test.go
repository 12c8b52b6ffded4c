package settlement_test

import (
	"testing"

	"go-settlement/internal/settlement"
	settlementerrors "go-settlement/internal/settlement/errors"
	"go-settlement/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractInputs_Withholding(t *testing.T) {
	rate := decimal.RequireFromString("0.033")
	tests := []struct {
		name      string
		base      int64
		deduction int64
		final     int64
	}{
		{"typical", 100_000, 3_300, 96_700},
		{"rounds down in worker's favour", 10, 0, 10},
		{"one million", 1_000_000, 33_000, 967_000},
		{"zero", 0, 0, 0},
		{"fraction floors", 1_234_567, 40_740, 1_193_827},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := settlement.ContractInputs{MonthlyAmount: tt.base, TaxRate: rate}.Amounts()
			require.NoError(t, err)
			assert.Equal(t, tt.base, a.Base)
			assert.Equal(t, tt.deduction, a.Deduction)
			assert.Equal(t, tt.final, a.Final)
			assert.Equal(t, a.Base, a.Deduction+a.Final)
		})
	}
}

func TestObligationInputs_Categories(t *testing.T) {
	assert.Equal(t, settlement.CategoryRegular, settlement.SalaryInputs{}.Category())
	assert.Equal(t, settlement.CategoryDaily, settlement.DailyWageInputs{}.Category())
	assert.Equal(t, settlement.CategorySubcontractIndividual, settlement.ContractInputs{}.Category())
	assert.Equal(t, settlement.CategorySubcontractCompany, settlement.CompanyContractInputs{}.Category())
}

func TestObligationInputs_Errors(t *testing.T) {
	_, err := settlement.SalaryInputs{ContractedSalary: -1}.Amounts()
	assert.ErrorIs(t, err, settlementerrors.ErrInvalidAmount)

	_, err = settlement.CompanyContractInputs{MonthlyAmount: -5}.Amounts()
	assert.ErrorIs(t, err, settlementerrors.ErrInvalidAmount)

	_, err = settlement.ContractInputs{MonthlyAmount: 100, TaxRate: decimal.NewFromInt(1)}.Amounts()
	assert.ErrorIs(t, err, money.ErrInvalidRate)

	_, err = settlement.DailyWageInputs{DailyWage: 100, Days: 0}.Amounts()
	assert.ErrorIs(t, err, settlementerrors.ErrInvalidDays)

	_, err = settlement.DailyWageInputs{DailyWage: 1 << 62, Days: 4}.Amounts()
	assert.ErrorIs(t, err, settlementerrors.ErrInvalidAmount)
}

func TestDailyWageInputs_Amounts(t *testing.T) {
	a, err := settlement.DailyWageInputs{DailyWage: 150_000, Days: 3}.Amounts()
	require.NoError(t, err)
	assert.Equal(t, int64(450_000), a.Base)
	assert.Equal(t, int64(0), a.Deduction)
	assert.Equal(t, int64(450_000), a.Final)

	a, err = settlement.DailyWageInputs{DailyWage: 150_000, Days: 2, WithholdingRate: decimal.RequireFromString("0.027")}.Amounts()
	require.NoError(t, err)
	assert.Equal(t, int64(8_100), a.Deduction)
	assert.Equal(t, int64(291_900), a.Final)
}

func TestCompanyContractInputs_Gross(t *testing.T) {
	a, err := settlement.CompanyContractInputs{MonthlyAmount: 2_000_000}.Amounts()
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.Deduction)
	assert.Equal(t, int64(2_000_000), a.Final)
	assert.True(t, a.Rate.IsZero())
}

func TestWorkerKey(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id.String(), settlement.WorkerKey(&id, "anything"))

	nilID := uuid.Nil
	assert.Equal(t, "name:hong gildong", settlement.WorkerKey(&nilID, "  Hong   GilDong "))
	assert.Equal(t, settlement.WorkerKey(nil, "HONG GILDONG"), settlement.WorkerKey(nil, "hong\tgildong"))
	assert.NotEqual(t, settlement.WorkerKey(nil, "Kim"), settlement.WorkerKey(nil, "Kimm"))
}
