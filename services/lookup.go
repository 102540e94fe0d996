package services

import (
	"strings"

	"investor-lookup/metrics"
	"investor-lookup/models"
	"investor-lookup/storage"
	"investor-lookup/utils"
)

// LookupService answers investor queries against a Repository.
type LookupService struct {
	repo   *Repository
	logger *utils.Logger
}

// NewLookupService creates a LookupService over repo.
func NewLookupService(repo *Repository, logger *utils.Logger) *LookupService {
	return &LookupService{repo: repo, logger: logger}
}

// FindInvestor returns the first investor whose identifier or email equals
// query, ignoring case and surrounding whitespace. An empty query finds nothing.
func (s *LookupService) FindInvestor(query string) (*models.Investor, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, false
	}

	for i := range s.repo.Investors {
		inv := &s.repo.Investors[i]
		if sameKey(inv.ID, q) {
			return inv, true
		}
		if inv.HasEmail && sameKey(inv.Email, q) {
			return inv, true
		}
	}
	return nil, false
}

// DealSummary counts the deals linked to inv and sums their amounts.
func (s *LookupService) DealSummary(inv *models.Investor) models.DealSummary {
	var sum models.DealSummary
	if inv == nil {
		return sum
	}
	for _, d := range s.repo.Deals {
		if !dealMatches(d, inv) {
			continue
		}
		sum.Count++
		sum.TotalInvested += d.Amount
	}
	return sum
}

// PlatformSnapshot summarizes the projects table. Currency totals are only
// set when their column exists.
func (s *LookupService) PlatformSnapshot() models.PlatformSnapshot {
	snap := models.PlatformSnapshot{ProjectCount: len(s.repo.Projects)}

	if s.repo.projectHasSGD {
		var total float64
		for _, p := range s.repo.Projects {
			total += p.CrowdfundedSGD
		}
		snap.CrowdfundedSGD = &total
	}
	if s.repo.projectHasIDR {
		var total float64
		for _, p := range s.repo.Projects {
			total += p.CrowdfundedIDR
		}
		snap.CrowdfundedIDR = &total
	}
	return snap
}

// Lookup runs a whole query: find the investor, then summarize their deals.
func (s *LookupService) Lookup(query string) models.LookupResult {
	res := models.LookupResult{Query: query}
	if strings.TrimSpace(query) == "" {
		res.Empty = true
		metrics.LookupsTotal.WithLabelValues(metrics.ResultEmpty).Inc()
		return res
	}

	inv, ok := s.FindInvestor(query)
	if !ok {
		res.NotFound = true
		metrics.LookupsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		s.logger.Debug("[lookup] No investor for %q", query)
		return res
	}

	res.Investor = inv
	res.Deals = s.DealSummary(inv)
	metrics.LookupsTotal.WithLabelValues(metrics.ResultFound).Inc()
	s.logger.Debug("[lookup] %q → investor %q, %d deals", query, inv.ID, res.Deals.Count)
	return res
}

// ProfileCSV exports a single investor row with the investor header.
func (s *LookupService) ProfileCSV(inv *models.Investor) ([]byte, error) {
	return storage.ExportCSV(s.repo.InvestorTable.Columns, [][]string{inv.Record.Values})
}

// InvestorsCSV exports the whole investors table.
func (s *LookupService) InvestorsCSV() ([]byte, error) {
	return storage.ExportCSV(s.InvestorRows())
}

// InvestorRows returns the investor header and every row in store order.
func (s *LookupService) InvestorRows() ([]string, [][]string) {
	return s.repo.InvestorTable.Columns, s.repo.InvestorTable.Rows
}

// ProjectReference returns the projects table without its unnamed columns.
func (s *LookupService) ProjectReference() *models.Table {
	src := s.repo.ProjectTable
	var keep []int
	for i, c := range src.Columns {
		if !strings.HasPrefix(c, "Unnamed") {
			keep = append(keep, i)
		}
	}

	out := &models.Table{Name: src.Name, Columns: make([]string, len(keep))}
	for j, i := range keep {
		out.Columns[j] = src.Columns[i]
	}
	out.Rows = make([][]string, len(src.Rows))
	for r, row := range src.Rows {
		vals := make([]string, len(keep))
		for j, i := range keep {
			if i < len(row) {
				vals[j] = row[i]
			}
		}
		out.Rows[r] = vals
	}
	return out
}

// dealMatches applies both link rules. A column the deals table lacks, or a
// blank investor key, never contributes a match.
func dealMatches(d models.Deal, inv *models.Investor) bool {
	if d.HasEmail && inv.HasEmail && strings.TrimSpace(inv.Email) != "" && sameKey(d.Email, inv.Email) {
		return true
	}
	if d.HasContactIDs && ContactIDsContain(d.ContactIDs, inv.ID) {
		return true
	}
	return false
}

// ContactIDsContain reports whether the associated-contact-ids cell mentions
// id. This is plain substring containment, so "C1" also matches "C10".
func ContactIDsContain(contactIDs, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	return strings.Contains(contactIDs, id)
}

func sameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
