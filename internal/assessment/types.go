package assessment

// FeatureVector is the fixed 10-dimensional signal set derived from an
// applicant profile. Field order matters: key factors break impact ties by
// this order.
type FeatureVector struct {
	CreditScore              float64 `json:"credit_score"`
	MonthlyIncome            float64 `json:"monthly_income"`
	TotalAlternativeIncome   float64 `json:"total_alternative_income"`
	PaymentReliabilityScore  float64 `json:"payment_reliability_score"`
	CashFlowConsistency      float64 `json:"cash_flow_consistency"`
	PlatformRatings          float64 `json:"platform_ratings"`
	CommunityTrustScore      float64 `json:"community_trust_score"`
	FinancialEngagementScore float64 `json:"financial_engagement_score"`
	IncomeDiversification    float64 `json:"income_diversification"`
	BusinessHealth           float64 `json:"business_health"`
}

// value returns the named feature, zero for unknown names.
func (f FeatureVector) value(name string) float64 {
	switch name {
	case "credit_score":
		return f.CreditScore
	case "monthly_income":
		return f.MonthlyIncome
	case "total_alternative_income":
		return f.TotalAlternativeIncome
	case "payment_reliability_score":
		return f.PaymentReliabilityScore
	case "cash_flow_consistency":
		return f.CashFlowConsistency
	case "platform_ratings":
		return f.PlatformRatings
	case "community_trust_score":
		return f.CommunityTrustScore
	case "financial_engagement_score":
		return f.FinancialEngagementScore
	case "income_diversification":
		return f.IncomeDiversification
	case "business_health":
		return f.BusinessHealth
	}
	return 0
}

// KeyFactor is one feature ranked by its contribution to the Empowr score.
type KeyFactor struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Impact     float64 `json:"impact"`
	Importance float64 `json:"importance"`
}

// Decision labels.
const (
	DecisionApproved    = "APPROVED"
	DecisionConditional = "CONDITIONAL"
	DecisionDenied      = "DENIED"
)

// Confidence labels.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Risk labels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Result is the full decision envelope for one assessment. It is built fresh
// per call and never mutated afterwards.
type Result struct {
	Decision            string      `json:"decision"`
	Confidence          string      `json:"confidence"`
	EmpowrScore         int         `json:"empowrScore"`
	FicoScore           int         `json:"ficoScore"`
	BlendedScore        int         `json:"blendedScore"`
	ApprovalProbability float64     `json:"approvalProbability"`
	RiskLevel           string      `json:"riskLevel"`
	KeyFactors          []KeyFactor `json:"keyFactors"`
	Recommendations     []string    `json:"recommendations"`
}
