package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/empowrai/empowr-backend/internal/assessment"
)

// AssessmentRecord is one persisted assessment outcome. Only the decision
// envelope is stored; applicant profiles never touch the database.
type AssessmentRecord struct {
	ID                  string    `json:"id"`
	Decision            string    `json:"decision"`
	Confidence          string    `json:"confidence"`
	EmpowrScore         int       `json:"empowr_score"`
	FicoScore           int       `json:"fico_score"`
	BlendedScore        int       `json:"blended_score"`
	ApprovalProbability float64   `json:"approval_probability"`
	RiskLevel           string    `json:"risk_level"`
	IPAddress           string    `json:"-"`
	UserAgent           string    `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewAssessmentRecord builds a record from a scoring result
func NewAssessmentRecord(res assessment.Result, ipAddress, userAgent string) *AssessmentRecord {
	return &AssessmentRecord{
		ID:                  uuid.NewString(),
		Decision:            res.Decision,
		Confidence:          res.Confidence,
		EmpowrScore:         res.EmpowrScore,
		FicoScore:           res.FicoScore,
		BlendedScore:        res.BlendedScore,
		ApprovalProbability: res.ApprovalProbability,
		RiskLevel:           res.RiskLevel,
		IPAddress:           ipAddress,
		UserAgent:           userAgent,
		CreatedAt:           time.Now().UTC(),
	}
}
