package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateSavings_RowZeroIsStartingState(t *testing.T) {
	rows := SimulateSavings(SavingsInput{
		CurrentAge:          30,
		RetirementAge:       65,
		InitialSavings:      1_000_000,
		MonthlyContribution: 30_000,
		InvestmentRate:      5,
	})
	require.Len(t, rows, 36)
	assert.Equal(t, SavingsRow{Age: 30, Invested: 1_000_000, Bank: 1_000_000, Principal: 1_000_000}, rows[0])
	assert.Equal(t, 65, rows[35].Age)
	assert.Equal(t, 1_000_000+35*12*30_000.0, rows[35].Principal)
	assert.Greater(t, rows[35].Invested, rows[35].Bank)
	assert.GreaterOrEqual(t, rows[35].Bank, rows[35].Principal)
}

func TestSimulateSavings_MonthlyCompounding(t *testing.T) {
	rows := SimulateSavings(SavingsInput{
		CurrentAge:          40,
		RetirementAge:       41,
		MonthlyContribution: 10_000,
		InvestmentRate:      12,
	})
	require.Len(t, rows, 2)

	// Deposit then grow at 1% per month, twelve times.
	want := 0.0
	for m := 0; m < 12; m++ {
		want = (want + 10_000) * 1.01
	}
	assert.Equal(t, math.Round(want), rows[1].Invested)
	assert.Equal(t, 120_000.0, rows[1].Principal)
}

func TestSimulateSavings_ZeroRateMatchesPrincipal(t *testing.T) {
	rows := SimulateSavings(SavingsInput{CurrentAge: 20, RetirementAge: 30, InitialSavings: 500, MonthlyContribution: 100})
	for _, r := range rows {
		assert.Equal(t, r.Principal, r.Invested, "age %d", r.Age)
	}
}

func TestSimulateSavings_RetirementBeforeCurrentAge(t *testing.T) {
	rows := SimulateSavings(SavingsInput{CurrentAge: 50, RetirementAge: 40, InitialSavings: 7})
	require.Len(t, rows, 1)
	assert.Equal(t, 7.0, rows[0].Invested)
}
