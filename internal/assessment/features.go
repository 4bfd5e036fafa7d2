package assessment

import (
	"math"
	"strings"

	"github.com/empowrai/empowr-backend/internal/types"
)

// Neutral defaults applied when the intake form or document extraction left a
// field empty. Centralized here so the defaulting behavior stays testable.
const (
	defaultCreditScore   = 650.0
	defaultMonthlyIncome = 3000.0
	defaultGigRating     = 3.0
)

// cashFlowLevels maps the self-reported consistency category to a numeric
// signal. Unknown or missing categories land on the neutral 0.5.
var cashFlowLevels = map[string]float64{
	"high":   0.9,
	"medium": 0.6,
	"low":    0.3,
}

const cashFlowNeutral = 0.5

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ExtractFeatures maps a raw applicant profile onto the fixed feature vector.
// It is total: missing sections and fields coerce to defaults, never fail.
func ExtractFeatures(profile types.ApplicantProfile) FeatureVector {
	fi := profile.FinancialInfo
	if fi == nil {
		fi = &types.FinancialInfo{}
	}
	alt := profile.AlternativeIncome
	if alt == nil {
		alt = &types.AlternativeIncome{}
	}
	gig := alt.GigWork
	if gig == nil {
		gig = &types.GigWork{}
	}
	biz := alt.Business
	if biz == nil {
		biz = &types.Business{}
	}
	pay := profile.PaymentReliability
	if pay == nil {
		pay = &types.PaymentReliability{}
	}
	trust := profile.CommunityTrust
	if trust == nil {
		trust = &types.CommunityTrust{}
	}
	edu := profile.FinancialEducation
	if edu == nil {
		edu = &types.FinancialEducation{}
	}

	cashFlow := cashFlowSignal(biz.CashFlowConsistency)

	return FeatureVector{
		CreditScore:   floatOr(fi.CurrentCreditScore, defaultCreditScore),
		MonthlyIncome: floatOr(fi.MonthlyIncome, defaultMonthlyIncome),
		TotalAlternativeIncome: floatOr(gig.MonthlyIncome, 0) +
			floatOr(biz.MonthlyRevenue, 0) +
			otherIncomeTotal(alt.OtherIncome),
		PaymentReliabilityScore: 0.5*(floatOr(pay.RentOnTimePercent, 0)/100) +
			0.5*(floatOr(pay.UtilityOnTimePercent, 0)/100),
		CashFlowConsistency:      cashFlow,
		PlatformRatings:          floatOr(gig.AverageRating, defaultGigRating) / 5,
		CommunityTrustScore:      communityTrustSignal(trust),
		FinancialEngagementScore: math.Min(float64(intOr(edu.CoursesCompleted, 0))/10, 1),
		IncomeDiversification:    diversificationSignal(gig, biz, alt.OtherIncome),
		BusinessHealth:           businessHealthSignal(biz, cashFlow),
	}
}

func cashFlowSignal(category *string) float64 {
	if category == nil {
		return cashFlowNeutral
	}
	if v, ok := cashFlowLevels[strings.ToLower(strings.TrimSpace(*category))]; ok {
		return v
	}
	return cashFlowNeutral
}

func otherIncomeTotal(sources []types.OtherIncomeSource) float64 {
	total := 0.0
	for _, s := range sources {
		total += floatOr(s.MonthlyAmount, 0)
	}
	return total
}

// communityTrustSignal log-scales endorsement and reference density so a
// handful of endorsements matters and hundreds do not dominate.
func communityTrustSignal(trust *types.CommunityTrust) float64 {
	endorsements := intOr(trust.ProfessionalEndorsements, 0) +
		intOr(trust.PersonalEndorsements, 0) +
		intOr(trust.CommunityEndorsements, 0)
	return math.Log1p(float64(endorsements + len(trust.References)))
}

// diversificationSignal sums three independent presence indicators and stays
// within [0, 1] by construction.
func diversificationSignal(gig *types.GigWork, biz *types.Business, other []types.OtherIncomeSource) float64 {
	score := 0.0
	if len(gig.Platforms) > 1 {
		score += 0.3
	}
	if boolOr(biz.HasRevenue, false) {
		score += 0.4
	}
	if len(other) > 0 {
		score += 0.3
	}
	return score
}

// businessHealthSignal blends cash-flow consistency with business longevity.
// Applicants without business revenue score zero.
func businessHealthSignal(biz *types.Business, cashFlow float64) float64 {
	if !boolOr(biz.HasRevenue, false) {
		return 0
	}
	years := floatOr(biz.YearsInBusiness, 0)
	return cashFlow*0.7 + math.Min(years/10, 1)*0.3
}
