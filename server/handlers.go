package server

import (
	"net/http"
	"strings"

	"investor-lookup/metrics"
	"investor-lookup/models"
)

type indexPage struct {
	Query    string
	Result   models.LookupResult
	Snapshot models.PlatformSnapshot
	Projects *models.Table
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.lookupService(w, r)
	if !ok {
		return
	}

	q := r.URL.Query().Get("q")
	s.renderTemplate(w, "index.html", indexPage{
		Query:    q,
		Result:   svc.Lookup(q),
		Snapshot: svc.PlatformSnapshot(),
		Projects: svc.ProjectReference(),
	})
}

func (s *Server) handleProfileCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	svc, ok := s.lookupService(w, r)
	if !ok {
		return
	}
	inv, found := svc.FindInvestor(q)
	if !found {
		http.Error(w, "No investor found", http.StatusNotFound)
		return
	}

	data, err := svc.ProfileCSV(inv)
	if err != nil {
		s.logger.Error("[server] Profile export: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ExportsTotal.WithLabelValues(metrics.ExportProfile).Inc()
	writeCSV(w, "investor_profile.csv", data)
}

func (s *Server) handleInvestorsCSV(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.lookupService(w, r)
	if !ok {
		return
	}

	data, err := svc.InvestorsCSV()
	if err != nil {
		s.logger.Error("[server] Investors export: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ExportsTotal.WithLabelValues(metrics.ExportInvestors).Inc()
	writeCSV(w, "all_investors.csv", data)
}

type lookupResponse struct {
	Query       string              `json:"query"`
	Found       bool                `json:"found"`
	Investor    map[string]string   `json:"investor,omitempty"`
	DealSummary *models.DealSummary `json:"deal_summary,omitempty"`
}

func (s *Server) handleAPILookup(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.lookupService(w, r)
	if !ok {
		return
	}

	res := svc.Lookup(r.URL.Query().Get("q"))
	resp := lookupResponse{Query: res.Query}
	switch {
	case res.Empty:
		s.writeJSON(w, http.StatusBadRequest, resp)
	case res.NotFound:
		s.writeJSON(w, http.StatusNotFound, resp)
	default:
		resp.Found = true
		resp.Investor = make(map[string]string, len(res.Investor.Record.Columns))
		for i, c := range res.Investor.Record.Columns {
			resp.Investor[c] = res.Investor.Record.Get(i)
		}
		resp.DealSummary = &res.Deals
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleAPISnapshot(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.lookupService(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, svc.PlatformSnapshot())
}
