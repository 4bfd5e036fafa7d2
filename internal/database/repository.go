package database

import (
	"fmt"
)

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveAssessment persists one assessment record
func (r *Repository) SaveAssessment(rec *AssessmentRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO assessments (
			id, decision, confidence, empowr_score, fico_score, blended_score,
			approval_probability, risk_level, ip_address, user_agent, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Decision, rec.Confidence, rec.EmpowrScore, rec.FicoScore,
		rec.BlendedScore, rec.ApprovalProbability, rec.RiskLevel,
		rec.IPAddress, rec.UserAgent, rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// RecentAssessments returns the most recent assessment records
func (r *Repository) RecentAssessments(limit int) ([]AssessmentRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT id, decision, confidence, empowr_score, fico_score, blended_score,
			approval_probability, risk_level, created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	records := make([]AssessmentRecord, 0, limit)
	for rows.Next() {
		var rec AssessmentRecord
		if err := rows.Scan(
			&rec.ID, &rec.Decision, &rec.Confidence, &rec.EmpowrScore,
			&rec.FicoScore, &rec.BlendedScore, &rec.ApprovalProbability,
			&rec.RiskLevel, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DecisionStats returns assessment counts grouped by decision
func (r *Repository) DecisionStats() (map[string]int64, error) {
	rows, err := r.db.Query(`
		SELECT decision, COUNT(*)
		FROM assessments
		GROUP BY decision
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query decision stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var decision string
		var count int64
		if err := rows.Scan(&decision, &count); err != nil {
			return nil, fmt.Errorf("failed to scan decision stats: %w", err)
		}
		stats[decision] = count
	}

	return stats, rows.Err()
}
