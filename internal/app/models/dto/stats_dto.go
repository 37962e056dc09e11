package dto

// FinanceReportResponse aggregates payment totals for a subset of students.
// Subset is either "all" or a normalized region code; amounts are rendered
// with two decimal places.
type FinanceReportResponse struct {
	Subset       string `json:"subset"`
	StudentCount int    `json:"studentCount"`
	Paid         string `json:"paid"`
	Expected     string `json:"expected"`
	Final        string `json:"final"`
	Difference   string `json:"difference"`
}

// RegionFinanceResponse is one region row of the overview report
type RegionFinanceResponse struct {
	Region       string `json:"region"`
	StudentCount int    `json:"studentCount"`
	Paid         string `json:"paid"`
	Expected     string `json:"expected"`
	Final        string `json:"final"`
	Difference   string `json:"difference"`
}

// OverviewResponse is the per-region breakdown plus the unfiltered totals
type OverviewResponse struct {
	Total   FinanceReportResponse   `json:"total"`
	Regions []RegionFinanceResponse `json:"regions"`
}

// TierResponse is one bucket of the student-tier tabulation, grouped by
// full-year liability.
type TierResponse struct {
	Liability    string `json:"liability"`
	Label        string `json:"label"`
	StudentCount int    `json:"studentCount"`
}

// TiersResponse is the full tier tabulation
type TiersResponse struct {
	Tiers []TierResponse `json:"tiers"`
}
