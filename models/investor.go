package models

// Investor is a contact or entity that may appear in deals.
type Investor struct {
	ID       string
	Email    string
	HasEmail bool
	Record   Record
}

// Deal is one investment transaction. Has* fields are false when the deals
// table lacks that column altogether.
type Deal struct {
	Email         string
	HasEmail      bool
	ContactIDs    string
	HasContactIDs bool
	Amount        float64
}

// Project is a funded listing, used only for platform-wide totals.
type Project struct {
	CrowdfundedSGD float64
	CrowdfundedIDR float64
	Record         Record
}

// DealSummary aggregates the deals matched to one investor.
type DealSummary struct {
	Count         int     `json:"count"`
	TotalInvested float64 `json:"total_invested"`
}

// PlatformSnapshot aggregates the whole projects table. A nil currency total
// means the column does not exist and the metric is omitted.
type PlatformSnapshot struct {
	ProjectCount   int      `json:"project_count"`
	CrowdfundedSGD *float64 `json:"crowdfunded_sgd,omitempty"`
	CrowdfundedIDR *float64 `json:"crowdfunded_idr,omitempty"`
}

// LookupResult is everything one query produces.
type LookupResult struct {
	Query    string
	Empty    bool
	NotFound bool
	Investor *Investor
	Deals    DealSummary
}
