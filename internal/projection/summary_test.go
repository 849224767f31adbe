package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/lifeplan/internal/model"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		daily float64
		want  LifestyleTier
	}{
		{-10, TierSnack},
		{0, TierSnack},
		{499, TierSnack},
		{500, TierCafe},
		{1_499, TierCafe},
		{1_500, TierHobby},
		{4_999, TierHobby},
		{5_000, TierTravel},
		{9_999, TierTravel},
		{10_000, TierUpgrade},
	}
	for _, tc := range cases {
		if got := TierFor(tc.daily); got != tc.want {
			t.Fatalf("TierFor(%v) = %q, want %q", tc.daily, got, tc.want)
		}
		if tc.want.Description() == "" {
			t.Fatalf("tier %q has no description", tc.want)
		}
	}
}

func TestDailyDifference(t *testing.T) {
	// 10,950,000 over 30 years of days is exactly 1,000 a day.
	assert.Equal(t, 1_000.0, DailyDifference(20_950_000, 10_000_000))
	assert.Equal(t, 0.0, DailyDifference(5, 5))
}

func TestSummarize(t *testing.T) {
	snaps := []model.YearlySnapshot{
		{Age: 60, TotalIncome: 100, TotalExpenses: 50, Education: 10, TotalAssets: 1_000},
		{Age: 61, TotalIncome: 100, TotalExpenses: 70, Education: 20, TotalAssets: 5_000},
		{Age: 62, TotalExpenses: 90, TotalAssets: 0, Shortfall: 40},
		{Age: 63, TotalExpenses: 90, TotalAssets: 0, Shortfall: 90, SavingsOnlyTotal: 0, RealTotalAssets: 0},
	}

	s := Summarize(snaps)
	assert.Equal(t, 60, s.StartAge)
	assert.Equal(t, 63, s.EndAge)
	assert.Equal(t, 200.0, s.LifetimeIncome)
	assert.Equal(t, 300.0, s.LifetimeExpenses)
	assert.Equal(t, 30.0, s.LifetimeEducation)
	assert.Equal(t, 5_000.0, s.PeakAssets)
	assert.Equal(t, 61, s.PeakAge)
	assert.Equal(t, 62, s.DepletionAge)
	assert.True(t, s.Depleted())
	assert.Equal(t, 130.0, s.TotalShortfall)
	assert.Equal(t, TierSnack, s.Lifestyle)
}

func TestSummarize_InvestmentGain(t *testing.T) {
	snaps := []model.YearlySnapshot{
		{Age: 99, TotalAssets: 1},
		{Age: 100, TotalAssets: 30_000_000, SavingsOnlyTotal: 8_100_000},
	}
	s := Summarize(snaps)
	assert.Equal(t, 21_900_000.0, s.InvestmentGain)
	assert.Equal(t, 2_000.0, s.DailyDifference)
	assert.Equal(t, TierHobby, s.Lifestyle)
	assert.False(t, s.Depleted())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.FinalTotal)
	assert.Equal(t, TierSnack, s.Lifestyle)
}
