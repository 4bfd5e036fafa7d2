package types

// ApplicantProfile is the completed multi-step intake form. Every leaf is
// optional: the intake frontend and the document extraction pipeline both
// produce partially-populated profiles, and missing fields fall back to
// documented neutral defaults during feature extraction.
type ApplicantProfile struct {
	PersonalInfo       *PersonalInfo       `json:"personalInfo,omitempty"`
	FinancialInfo      *FinancialInfo      `json:"financialInfo,omitempty"`
	AlternativeIncome  *AlternativeIncome  `json:"alternativeIncome,omitempty"`
	PaymentReliability *PaymentReliability `json:"paymentReliability,omitempty"`
	CommunityTrust     *CommunityTrust     `json:"communityTrust,omitempty"`
	FinancialEducation *FinancialEducation `json:"financialEducation,omitempty"`
}

// PersonalInfo is kept on the application record but never consumed by the
// scoring engine.
type PersonalInfo struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}

type FinancialInfo struct {
	CurrentCreditScore *float64 `json:"currentCreditScore,omitempty"`
	MonthlyIncome      *float64 `json:"monthlyIncome,omitempty"`
}

type AlternativeIncome struct {
	GigWork     *GigWork            `json:"gigWork,omitempty"`
	Business    *Business           `json:"business,omitempty"`
	OtherIncome []OtherIncomeSource `json:"otherIncome,omitempty"`
}

type GigWork struct {
	Platforms     []string `json:"platforms,omitempty"`
	MonthlyIncome *float64 `json:"monthlyIncome,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
}

type Business struct {
	HasRevenue          *bool    `json:"hasRevenue,omitempty"`
	MonthlyRevenue      *float64 `json:"monthlyRevenue,omitempty"`
	YearsInBusiness     *float64 `json:"yearsInBusiness,omitempty"`
	CashFlowConsistency *string  `json:"cashFlowConsistency,omitempty"`
}

type OtherIncomeSource struct {
	Source        string   `json:"source,omitempty"`
	MonthlyAmount *float64 `json:"monthlyAmount,omitempty"`
}

type PaymentReliability struct {
	RentOnTimePercent    *float64 `json:"rentOnTimePercent,omitempty"`
	UtilityOnTimePercent *float64 `json:"utilityOnTimePercent,omitempty"`
}

type CommunityTrust struct {
	ProfessionalEndorsements *int        `json:"professionalEndorsements,omitempty"`
	PersonalEndorsements     *int        `json:"personalEndorsements,omitempty"`
	CommunityEndorsements    *int        `json:"communityEndorsements,omitempty"`
	References               []Reference `json:"references,omitempty"`
}

type Reference struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

type FinancialEducation struct {
	CoursesCompleted *int `json:"coursesCompleted,omitempty"`
}

// ExtractDocumentRequest asks the document extraction pipeline to pull
// profile fields out of uploaded document text.
type ExtractDocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required"`
	Text         string `json:"text" binding:"required"`
}
