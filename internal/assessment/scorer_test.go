package assessment

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/empowrai/empowr-backend/internal/types"
)

func TestFeatureWeightsSumToOne(t *testing.T) {
	total := 0.0
	for _, name := range featureOrder {
		total += featureSpecs[name].weight
	}
	assert.InDelta(t, 1.0, total, 1e-9, "importance weights should sum to 1.0")
}

func TestFeatureOrderMatchesSpecs(t *testing.T) {
	assert.Len(t, featureOrder, len(featureSpecs))
	for _, name := range featureOrder {
		_, ok := featureSpecs[name]
		assert.True(t, ok, "feature %q missing from weight table", name)
	}
}

func TestDefaultImportanceForUnknownFeature(t *testing.T) {
	assert.Equal(t, defaultImportance, importanceOf("nonexistent_feature"))
	assert.Equal(t, "Nonexistent Feature", labelOf("nonexistent_feature"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		kind     normKind
		value    float64
		expected float64
	}{
		{name: "credit score lower bound", kind: normCreditRange, value: 300, expected: 0},
		{name: "credit score upper bound", kind: normCreditRange, value: 850, expected: 1},
		{name: "credit score midpoint", kind: normCreditRange, value: 575, expected: 0.5},
		{name: "income log scale", kind: normLogIncome, value: 5000, expected: math.Log(5) / 3},
		{name: "income caps at 1", kind: normLogIncome, value: 1000000, expected: 1},
		{name: "zero income floors to 0", kind: normLogIncome, value: 0, expected: 0},
		{name: "negative income floors to 0", kind: normLogIncome, value: -100, expected: 0},
		{name: "sub-1000 income goes negative", kind: normLogIncome, value: 500, expected: math.Log(0.5) / 3},
		{name: "unit value passes through", kind: normUnit, value: 0.7, expected: 0.7},
		{name: "unit value caps at 1", kind: normUnit, value: 2.5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, normalize(tt.kind, tt.value), 1e-12)
		})
	}
}

func TestDecisionLadder(t *testing.T) {
	tests := []struct {
		probability float64
		decision    string
		confidence  string
		risk        string
	}{
		{0.70, DecisionApproved, ConfidenceHigh, RiskLow},
		{0.85, DecisionApproved, ConfidenceHigh, RiskLow},
		{0.55, DecisionApproved, ConfidenceMedium, RiskLow},
		{0.69, DecisionApproved, ConfidenceMedium, RiskLow},
		{0.40, DecisionConditional, ConfidenceMedium, RiskMedium},
		{0.54, DecisionConditional, ConfidenceMedium, RiskMedium},
		{0.25, DecisionConditional, ConfidenceLow, RiskMedium},
		{0.39, DecisionConditional, ConfidenceLow, RiskMedium},
		{0.24, DecisionDenied, ConfidenceHigh, RiskHigh},
		{0.0, DecisionDenied, ConfidenceHigh, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("probability %.2f", tt.probability), func(t *testing.T) {
			decision, confidence, risk := decide(tt.probability)
			assert.Equal(t, tt.decision, decision)
			assert.Equal(t, tt.confidence, confidence)
			assert.Equal(t, tt.risk, risk)
		})
	}
}

func TestDecisionLadderExhaustive(t *testing.T) {
	// Sample [0,1] in steps of 0.01: every probability must land in exactly
	// one band with no gaps or overlaps at the 0.25/0.40/0.55/0.70 boundaries.
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100

		matches := 0
		if p >= 0.70 {
			matches++
		}
		if p >= 0.55 && p < 0.70 {
			matches++
		}
		if p >= 0.40 && p < 0.55 {
			matches++
		}
		if p >= 0.25 && p < 0.40 {
			matches++
		}
		if p < 0.25 {
			matches++
		}
		assert.Equal(t, 1, matches, "probability %.2f should match exactly one band", p)

		decision, confidence, risk := decide(p)
		assert.NotEmpty(t, decision)
		assert.NotEmpty(t, confidence)
		assert.NotEmpty(t, risk)

		switch {
		case p >= 0.70:
			assert.Equal(t, DecisionApproved, decision)
			assert.Equal(t, ConfidenceHigh, confidence)
		case p >= 0.55:
			assert.Equal(t, DecisionApproved, decision)
			assert.Equal(t, ConfidenceMedium, confidence)
		case p >= 0.40:
			assert.Equal(t, DecisionConditional, decision)
			assert.Equal(t, ConfidenceMedium, confidence)
		case p >= 0.25:
			assert.Equal(t, DecisionConditional, decision)
			assert.Equal(t, ConfidenceLow, confidence)
		default:
			assert.Equal(t, DecisionDenied, decision)
			assert.Equal(t, ConfidenceHigh, confidence)
		}
	}
}

func TestAssessDeterminism(t *testing.T) {
	profile := types.ApplicantProfile{
		FinancialInfo: &types.FinancialInfo{
			CurrentCreditScore: fptr(680),
			MonthlyIncome:      fptr(4200),
		},
		AlternativeIncome: &types.AlternativeIncome{
			GigWork: &types.GigWork{
				Platforms:     []string{"uber", "lyft"},
				MonthlyIncome: fptr(600),
				AverageRating: fptr(4.8),
			},
		},
		PaymentReliability: &types.PaymentReliability{
			RentOnTimePercent:    fptr(90),
			UtilityOnTimePercent: fptr(85),
		},
	}

	first := Assess(ExtractFeatures(profile))
	second := Assess(ExtractFeatures(profile))

	assert.Equal(t, first, second)
}

func TestKeyFactorsOrdering(t *testing.T) {
	fv := FeatureVector{
		CreditScore:              720,
		MonthlyIncome:            5000,
		TotalAlternativeIncome:   0,
		PaymentReliabilityScore:  1.0,
		CashFlowConsistency:      0.5,
		PlatformRatings:          0.6,
		CommunityTrustScore:      0,
		FinancialEngagementScore: 0,
		IncomeDiversification:    0,
		BusinessHealth:           0,
	}

	factors := keyFactors(fv)

	assert.Len(t, factors, 5)
	for i := 1; i < len(factors); i++ {
		assert.GreaterOrEqual(t, factors[i-1].Impact, factors[i].Impact,
			"key factors must be sorted by descending impact")
	}

	assert.Equal(t, "Traditional Credit Score", factors[0].Name)
	assert.Equal(t, 720.0, factors[0].Value)
	assert.Equal(t, 0.25, factors[0].Importance)
	assert.Equal(t, "Payment History", factors[1].Name)
	assert.Equal(t, "Monthly Income", factors[2].Name)
}

func TestKeyFactorsTieBreakByFeatureOrder(t *testing.T) {
	// An all-zero vector with credit at the floor gives several zero-impact
	// features; ties must resolve in fixed feature order.
	fv := FeatureVector{CreditScore: 300}

	factors := keyFactors(fv)

	assert.Len(t, factors, 5)
	assert.Equal(t, "Traditional Credit Score", factors[0].Name)
	assert.Equal(t, "Monthly Income", factors[1].Name)
	assert.Equal(t, "Alternative Income Sources", factors[2].Name)
}

func TestRecommendationsCapAndOrder(t *testing.T) {
	// Every threshold rule fires; only the first four survive.
	fv := FeatureVector{
		CreditScore:              500,
		MonthlyIncome:            2000,
		TotalAlternativeIncome:   100,
		PaymentReliabilityScore:  0.4,
		FinancialEngagementScore: 0.1,
		CommunityTrustScore:      0.5,
	}

	recs := recommendations(fv, DecisionDenied)

	assert.Len(t, recs, maxRecommendations)
	assert.Equal(t, recommendationRules[0].message, recs[0])
	assert.Equal(t, recommendationRules[1].message, recs[1])
	assert.Equal(t, recommendationRules[2].message, recs[2])
	assert.Equal(t, recommendationRules[3].message, recs[3])
}

func TestRecommendationsApprovedApplicant(t *testing.T) {
	// A strong profile only triggers the approved follow-up.
	fv := FeatureVector{
		CreditScore:              800,
		MonthlyIncome:            9000,
		TotalAlternativeIncome:   2000,
		PaymentReliabilityScore:  0.95,
		FinancialEngagementScore: 0.8,
		CommunityTrustScore:      2.5,
	}

	recs := recommendations(fv, DecisionApproved)

	assert.Equal(t, []string{recommendationRules[5].message}, recs)
}

func TestScoreBoundsNominalInputs(t *testing.T) {
	for credit := 300.0; credit <= 850.0; credit += 50 {
		fv := FeatureVector{
			CreditScore:              credit,
			MonthlyIncome:            4000,
			TotalAlternativeIncome:   1500,
			PaymentReliabilityScore:  0.9,
			CashFlowConsistency:      0.6,
			PlatformRatings:          0.8,
			CommunityTrustScore:      1.0,
			FinancialEngagementScore: 0.5,
			IncomeDiversification:    0.6,
			BusinessHealth:           0.5,
		}

		res := Assess(fv)

		assert.GreaterOrEqual(t, res.EmpowrScore, 300, "credit=%v", credit)
		assert.LessOrEqual(t, res.EmpowrScore, 850, "credit=%v", credit)
		assert.GreaterOrEqual(t, res.FicoScore, 300, "credit=%v", credit)
		assert.LessOrEqual(t, res.FicoScore, 850, "credit=%v", credit)
		assert.GreaterOrEqual(t, res.BlendedScore, 300, "credit=%v", credit)
		assert.LessOrEqual(t, res.BlendedScore, 850, "credit=%v", credit)
		assert.GreaterOrEqual(t, res.ApprovalProbability, 0.0)
		assert.LessOrEqual(t, res.ApprovalProbability, 1.0)
	}
}

func TestEmpowrScoreUnboundedTrustInput(t *testing.T) {
	// The community trust term enters the weighted sum uncapped; extreme
	// endorsement counts can push the score past 850. Preserved behavior,
	// not a defect.
	fv := FeatureVector{
		CreditScore:              850,
		MonthlyIncome:            30000,
		TotalAlternativeIncome:   30000,
		PaymentReliabilityScore:  1,
		CashFlowConsistency:      1,
		PlatformRatings:          1,
		CommunityTrustScore:      10,
		FinancialEngagementScore: 1,
		IncomeDiversification:    1,
		BusinessHealth:           1,
	}

	res := Assess(fv)

	assert.Greater(t, res.EmpowrScore, 850)
}

func TestAssessEndToEndApprovedScenario(t *testing.T) {
	fv := FeatureVector{
		CreditScore:              720,
		MonthlyIncome:            5000,
		TotalAlternativeIncome:   0,
		PaymentReliabilityScore:  1.0,
		CashFlowConsistency:      0.5,
		PlatformRatings:          0.6,
		CommunityTrustScore:      0,
		FinancialEngagementScore: 0,
		IncomeDiversification:    0,
		BusinessHealth:           0,
	}

	res := Assess(fv)

	assert.InDelta(t, 0.588, res.ApprovalProbability, 0.001)
	assert.Equal(t, DecisionApproved, res.Decision)
	assert.Equal(t, ConfidenceMedium, res.Confidence)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, 720, res.FicoScore)
	assert.Equal(t, int(math.Round(float64(res.EmpowrScore)*0.6+720*0.4)), res.BlendedScore)
}

func TestAssessEndToEndDeniedScenario(t *testing.T) {
	fv := FeatureVector{CreditScore: 300}

	res := Assess(fv)

	assert.Equal(t, 0.0, res.ApprovalProbability)
	assert.Equal(t, DecisionDenied, res.Decision)
	assert.Equal(t, ConfidenceHigh, res.Confidence)
	assert.Equal(t, RiskHigh, res.RiskLevel)
}

func TestAssessNeverExceedsFactorAndRecommendationCaps(t *testing.T) {
	vectors := []FeatureVector{
		{},
		{CreditScore: 850, MonthlyIncome: 20000, PaymentReliabilityScore: 1},
		{CreditScore: 300, CommunityTrustScore: 5},
	}

	for i, fv := range vectors {
		res := Assess(fv)
		assert.LessOrEqual(t, len(res.KeyFactors), 5, "case %d", i)
		assert.LessOrEqual(t, len(res.Recommendations), 4, "case %d", i)
	}
}
