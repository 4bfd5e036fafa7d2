package assessment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/empowrai/empowr-backend/internal/types"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }
func sptr(v string) *string   { return &v }

func TestExtractFeaturesEmptyProfile(t *testing.T) {
	fv := ExtractFeatures(types.ApplicantProfile{})

	assert.Equal(t, 650.0, fv.CreditScore)
	assert.Equal(t, 3000.0, fv.MonthlyIncome)
	assert.Equal(t, 0.0, fv.TotalAlternativeIncome)
	assert.Equal(t, 0.0, fv.PaymentReliabilityScore)
	assert.Equal(t, 0.5, fv.CashFlowConsistency)
	assert.Equal(t, 0.6, fv.PlatformRatings)
	assert.Equal(t, 0.0, fv.CommunityTrustScore)
	assert.Equal(t, 0.0, fv.FinancialEngagementScore)
	assert.Equal(t, 0.0, fv.IncomeDiversification)
	assert.Equal(t, 0.0, fv.BusinessHealth)
}

func TestExtractFeaturesFullProfile(t *testing.T) {
	profile := types.ApplicantProfile{
		FinancialInfo: &types.FinancialInfo{
			CurrentCreditScore: fptr(720),
			MonthlyIncome:      fptr(5000),
		},
		AlternativeIncome: &types.AlternativeIncome{
			GigWork: &types.GigWork{
				Platforms:     []string{"uber", "doordash"},
				MonthlyIncome: fptr(800),
				AverageRating: fptr(4.5),
			},
			Business: &types.Business{
				HasRevenue:          bptr(true),
				MonthlyRevenue:      fptr(1200),
				YearsInBusiness:     fptr(4),
				CashFlowConsistency: sptr("high"),
			},
			OtherIncome: []types.OtherIncomeSource{
				{Source: "rental", MonthlyAmount: fptr(300)},
			},
		},
		PaymentReliability: &types.PaymentReliability{
			RentOnTimePercent:    fptr(95),
			UtilityOnTimePercent: fptr(100),
		},
		CommunityTrust: &types.CommunityTrust{
			ProfessionalEndorsements: iptr(2),
			PersonalEndorsements:     iptr(3),
			CommunityEndorsements:    iptr(1),
			References: []types.Reference{
				{Name: "A"}, {Name: "B"},
			},
		},
		FinancialEducation: &types.FinancialEducation{
			CoursesCompleted: iptr(7),
		},
	}

	fv := ExtractFeatures(profile)

	assert.Equal(t, 720.0, fv.CreditScore)
	assert.Equal(t, 5000.0, fv.MonthlyIncome)
	assert.Equal(t, 2300.0, fv.TotalAlternativeIncome) // 800 + 1200 + 300
	assert.InDelta(t, 0.975, fv.PaymentReliabilityScore, 1e-9)
	assert.Equal(t, 0.9, fv.CashFlowConsistency)
	assert.Equal(t, 0.9, fv.PlatformRatings)
	assert.InDelta(t, math.Log1p(8), fv.CommunityTrustScore, 1e-9) // 6 endorsements + 2 references
	assert.InDelta(t, 0.7, fv.FinancialEngagementScore, 1e-9)
	assert.InDelta(t, 1.0, fv.IncomeDiversification, 1e-9) // 0.3 + 0.4 + 0.3
	assert.InDelta(t, 0.9*0.7+0.4*0.3, fv.BusinessHealth, 1e-9)
}

func TestCashFlowSignal(t *testing.T) {
	tests := []struct {
		name     string
		category *string
		expected float64
	}{
		{name: "high maps to 0.9", category: sptr("high"), expected: 0.9},
		{name: "medium maps to 0.6", category: sptr("medium"), expected: 0.6},
		{name: "low maps to 0.3", category: sptr("low"), expected: 0.3},
		{name: "mixed case is accepted", category: sptr("HIGH"), expected: 0.9},
		{name: "whitespace is trimmed", category: sptr("  medium "), expected: 0.6},
		{name: "unknown falls back to neutral", category: sptr("volatile"), expected: 0.5},
		{name: "missing falls back to neutral", category: nil, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cashFlowSignal(tt.category))
		})
	}
}

func TestDiversificationSignal(t *testing.T) {
	tests := []struct {
		name     string
		gig      *types.GigWork
		biz      *types.Business
		other    []types.OtherIncomeSource
		expected float64
	}{
		{
			name:     "no sources",
			gig:      &types.GigWork{},
			biz:      &types.Business{},
			expected: 0,
		},
		{
			name:     "single gig platform does not count",
			gig:      &types.GigWork{Platforms: []string{"uber"}},
			biz:      &types.Business{},
			expected: 0,
		},
		{
			name:     "multiple gig platforms",
			gig:      &types.GigWork{Platforms: []string{"uber", "lyft"}},
			biz:      &types.Business{},
			expected: 0.3,
		},
		{
			name:     "business revenue",
			gig:      &types.GigWork{},
			biz:      &types.Business{HasRevenue: bptr(true)},
			expected: 0.4,
		},
		{
			name:     "other income source",
			gig:      &types.GigWork{},
			biz:      &types.Business{},
			other:    []types.OtherIncomeSource{{Source: "rental"}},
			expected: 0.3,
		},
		{
			name:     "all three indicators",
			gig:      &types.GigWork{Platforms: []string{"uber", "lyft", "doordash"}},
			biz:      &types.Business{HasRevenue: bptr(true)},
			other:    []types.OtherIncomeSource{{Source: "rental"}},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, diversificationSignal(tt.gig, tt.biz, tt.other), 1e-9)
		})
	}
}

func TestBusinessHealthSignal(t *testing.T) {
	tests := []struct {
		name     string
		biz      *types.Business
		cashFlow float64
		expected float64
	}{
		{
			name:     "no revenue flag scores zero",
			biz:      &types.Business{YearsInBusiness: fptr(8)},
			cashFlow: 0.9,
			expected: 0,
		},
		{
			name:     "revenue with missing years",
			biz:      &types.Business{HasRevenue: bptr(true)},
			cashFlow: 0.6,
			expected: 0.6 * 0.7,
		},
		{
			name:     "longevity caps at ten years",
			biz:      &types.Business{HasRevenue: bptr(true), YearsInBusiness: fptr(25)},
			cashFlow: 0.9,
			expected: 0.9*0.7 + 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, businessHealthSignal(tt.biz, tt.cashFlow), 1e-9)
		})
	}
}

func TestCommunityTrustSignalLogScaling(t *testing.T) {
	trust := &types.CommunityTrust{
		ProfessionalEndorsements: iptr(10),
		References:               []types.Reference{{Name: "A"}},
	}

	assert.InDelta(t, math.Log1p(11), communityTrustSignal(trust), 1e-9)
	assert.Equal(t, 0.0, communityTrustSignal(&types.CommunityTrust{}))
}

func TestPaymentReliabilityPartialData(t *testing.T) {
	// Rent history alone contributes at most half the score.
	fv := ExtractFeatures(types.ApplicantProfile{
		PaymentReliability: &types.PaymentReliability{
			RentOnTimePercent: fptr(100),
		},
	})

	assert.InDelta(t, 0.5, fv.PaymentReliabilityScore, 1e-9)
}
