package model

import (
	"github.com/sohakim/gagyebu/internal/common"
)

// AnalysisAbout names the metric an analysis covers.
type AnalysisAbout string

const (
	// AboutTotalExpense analyzes total spending over the period.
	AboutTotalExpense AnalysisAbout = "total_expense"
	// AboutTotalIncome analyzes total income over the period.
	AboutTotalIncome AnalysisAbout = "total_income"
	// AboutCategoryExpense analyzes spending broken down by category.
	AboutCategoryExpense AnalysisAbout = "category_expense"
	// AboutAccountBalance analyzes balances across accounts.
	AboutAccountBalance AnalysisAbout = "account_balance"
)

// Valid reports whether the about value is one of the known metrics.
func (a AnalysisAbout) Valid() bool {
	switch a {
	case AboutTotalExpense, AboutTotalIncome, AboutCategoryExpense, AboutAccountBalance:
		return true
	}
	return false
}

// AnalysisPeriodType is the cadence of an analysis.
type AnalysisPeriodType string

const (
	// PeriodWeekly is a weekly analysis.
	PeriodWeekly AnalysisPeriodType = "weekly"
	// PeriodMonthly is a monthly analysis.
	PeriodMonthly AnalysisPeriodType = "monthly"
)

// Valid reports whether the period type is one of the known values.
func (p AnalysisPeriodType) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// JobStatus is the observed state of a submitted analysis job.
type JobStatus string

const (
	// JobStatusPending means the job has not finished yet.
	JobStatusPending JobStatus = "PENDING"
	// JobStatusSuccess means the job finished and produced a result.
	JobStatusSuccess JobStatus = "SUCCESS"
	// JobStatusError means the job failed.
	JobStatusError JobStatus = "ERROR"
)

// Terminal reports whether no further transition can occur from s.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusError
}

// JobRequest describes an analysis job to submit.
type JobRequest struct {
	About       AnalysisAbout      `json:"about"`
	Type        AnalysisPeriodType `json:"type"`
	PeriodStart Date               `json:"period_start"`
	PeriodEnd   Date               `json:"period_end"`
}

// Validate checks the request before submission. Both dates are required
// and the period must not be inverted.
func (r *JobRequest) Validate() error {
	if !r.About.Valid() {
		return common.NewValidationError("about", "unknown analysis metric")
	}
	if !r.Type.Valid() {
		return common.NewValidationError("type", "must be weekly or monthly")
	}
	if r.PeriodStart.IsZero() {
		return common.NewValidationError("period_start", "is required")
	}
	if r.PeriodEnd.IsZero() {
		return common.NewValidationError("period_end", "is required")
	}
	if r.PeriodStart.After(r.PeriodEnd.Time) {
		return common.NewValidationError("period_start", "must not be after period_end")
	}
	return nil
}

// Analysis is a completed analysis produced by the backend on job success.
type Analysis struct {
	About       AnalysisAbout      `json:"about"`
	Type        AnalysisPeriodType `json:"type"`
	Description string             `json:"description"`
	ResultImage string             `json:"result_image,omitempty"`
	PeriodStart Date               `json:"period_start"`
	PeriodEnd   Date               `json:"period_end"`
	ID          int64              `json:"id"`
}
