package assessment

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normKind selects the per-feature normalization rule applied before
// weighting.
type normKind int

const (
	// normCreditRange maps the conventional 300-850 band onto [0,1].
	normCreditRange normKind = iota
	// normLogIncome log-scales a currency amount, capped at 1. Non-positive
	// amounts floor to 0 instead of feeding the logarithm.
	normLogIncome
	// normUnit caps an already unit-scaled signal at 1.
	normUnit
)

// featureSpec is the declarative scoring configuration for one feature:
// importance weight, normalization rule, and human-readable label.
type featureSpec struct {
	weight float64
	norm   normKind
	label  string
}

// featureOrder fixes iteration order for deterministic tie-breaking in key
// factors.
var featureOrder = []string{
	"credit_score",
	"monthly_income",
	"total_alternative_income",
	"payment_reliability_score",
	"cash_flow_consistency",
	"platform_ratings",
	"community_trust_score",
	"financial_engagement_score",
	"income_diversification",
	"business_health",
}

var featureSpecs = map[string]featureSpec{
	"credit_score":               {weight: 0.25, norm: normCreditRange, label: "Traditional Credit Score"},
	"monthly_income":             {weight: 0.20, norm: normLogIncome, label: "Monthly Income"},
	"total_alternative_income":   {weight: 0.12, norm: normLogIncome, label: "Alternative Income Sources"},
	"payment_reliability_score":  {weight: 0.15, norm: normUnit, label: "Payment History"},
	"cash_flow_consistency":      {weight: 0.04, norm: normUnit, label: "Business Cash Flow Stability"},
	"platform_ratings":           {weight: 0.03, norm: normUnit, label: "Gig Platform Performance"},
	"community_trust_score":      {weight: 0.10, norm: normUnit, label: "Community Trust"},
	"financial_engagement_score": {weight: 0.08, norm: normUnit, label: "Financial Education"},
	"income_diversification":     {weight: 0.02, norm: normUnit, label: "Income Diversification"},
	"business_health":            {weight: 0.01, norm: normUnit, label: "Overall Business Health"},
}

// defaultImportance is the defensive weight for feature names outside the
// fixed table. It cannot trigger with the fixed FeatureVector shape.
const defaultImportance = 0.1

func importanceOf(name string) float64 {
	if spec, ok := featureSpecs[name]; ok {
		return spec.weight
	}
	return defaultImportance
}

var labelCaser = cases.Title(language.English)

func labelOf(name string) string {
	if spec, ok := featureSpecs[name]; ok {
		return spec.label
	}
	return labelCaser.String(strings.ReplaceAll(name, "_", " "))
}

func normalize(kind normKind, v float64) float64 {
	switch kind {
	case normCreditRange:
		return (v - 300) / 550
	case normLogIncome:
		if v <= 0 {
			return 0
		}
		return math.Min(math.Log(v/1000)/3, 1.0)
	default:
		return math.Min(v, 1.0)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Assess turns a feature vector into the full decision envelope: composite
// scores, a threshold-ladder decision, ranked key factors, and
// recommendations. Pure and deterministic; repeated calls on the same vector
// return identical results.
func Assess(f FeatureVector) Result {
	probability := approvalProbability(f)
	decision, confidence, risk := decide(probability)

	empowr := empowrScore(f)
	fico := int(math.Round(f.CreditScore))
	blended := int(math.Round(float64(empowr)*0.6 + float64(fico)*0.4))

	return Result{
		Decision:            decision,
		Confidence:          confidence,
		EmpowrScore:         empowr,
		FicoScore:           fico,
		BlendedScore:        blended,
		ApprovalProbability: probability,
		RiskLevel:           risk,
		KeyFactors:          keyFactors(f),
		Recommendations:     recommendations(f, decision),
	}
}

// empowrScore is the weighted sum of normalized features, rescaled onto the
// conventional 300-850 band. The community trust term deliberately enters
// uncapped: extreme endorsement counts can push the score above 850. Known
// unbounded-input behavior; the decision path is unaffected because
// approvalProbability clamps independently.
func empowrScore(f FeatureVector) int {
	sum := 0.0
	for _, name := range featureOrder {
		spec := featureSpecs[name]
		n := normalize(spec.norm, f.value(name))
		if name == "community_trust_score" {
			n = f.value(name)
		}
		sum += spec.weight * n
	}
	return int(math.Round(300 + 550*sum))
}

// approvalProbability is an independently-weighted linear combination over a
// subset of raw and normalized features, clamped to [0,1].
func approvalProbability(f FeatureVector) float64 {
	incomeTerm := 0.0
	if f.MonthlyIncome > 0 {
		incomeTerm = math.Log(f.MonthlyIncome/1000) / 3
	}

	score := (f.CreditScore-300)/550*0.30 +
		incomeTerm*0.25 +
		f.PaymentReliabilityScore*0.20 +
		f.CommunityTrustScore/3*0.10 +
		f.FinancialEngagementScore*0.10 +
		f.CashFlowConsistency*0.05

	return clamp(score, 0, 1)
}

// decide walks the threshold ladder top-down; first match wins.
func decide(probability float64) (decision, confidence, risk string) {
	switch {
	case probability >= 0.70:
		return DecisionApproved, ConfidenceHigh, RiskLow
	case probability >= 0.55:
		return DecisionApproved, ConfidenceMedium, RiskLow
	case probability >= 0.40:
		return DecisionConditional, ConfidenceMedium, RiskMedium
	case probability >= 0.25:
		return DecisionConditional, ConfidenceLow, RiskMedium
	default:
		return DecisionDenied, ConfidenceHigh, RiskHigh
	}
}

// keyFactors ranks every feature by impact (importance x normalized value)
// and keeps the top five. The sort is stable so impact ties resolve in fixed
// feature order.
func keyFactors(f FeatureVector) []KeyFactor {
	factors := make([]KeyFactor, 0, len(featureOrder))
	for _, name := range featureOrder {
		spec := featureSpecs[name]
		raw := f.value(name)
		factors = append(factors, KeyFactor{
			Name:       labelOf(name),
			Value:      raw,
			Impact:     spec.weight * normalize(spec.norm, raw),
			Importance: spec.weight,
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Impact > factors[j].Impact
	})

	if len(factors) > 5 {
		factors = factors[:5]
	}
	return factors
}

// recommendationRule appends its message when the threshold condition holds.
type recommendationRule struct {
	applies func(f FeatureVector, decision string) bool
	message string
}

// recommendationRules is evaluated in order; only the first four triggered
// messages are kept.
var recommendationRules = []recommendationRule{
	{
		applies: func(f FeatureVector, _ string) bool { return f.CreditScore < 650 },
		message: "Improve your traditional credit score through secured credit cards or credit-builder loans",
	},
	{
		applies: func(f FeatureVector, _ string) bool { return f.PaymentReliabilityScore < 0.8 },
		message: "Build a stronger payment history with consistent on-time rent and utility payments",
	},
	{
		applies: func(f FeatureVector, _ string) bool { return f.FinancialEngagementScore < 0.5 },
		message: "Complete financial literacy courses to strengthen your financial profile",
	},
	{
		applies: func(f FeatureVector, _ string) bool { return f.CommunityTrustScore < 2 },
		message: "Seek endorsements and references from your community and professional network",
	},
	{
		applies: func(f FeatureVector, _ string) bool { return f.TotalAlternativeIncome < 500 },
		message: "Diversify your income through gig work or small business revenue",
	},
	{
		applies: func(_ FeatureVector, decision string) bool { return decision == DecisionApproved },
		message: "You qualify for credit - consider applying to keep building your financial strength",
	},
}

const maxRecommendations = 4

func recommendations(f FeatureVector, decision string) []string {
	out := make([]string, 0, maxRecommendations)
	for _, rule := range recommendationRules {
		if len(out) == maxRecommendations {
			break
		}
		if rule.applies(f, decision) {
			out = append(out, rule.message)
		}
	}
	return out
}
