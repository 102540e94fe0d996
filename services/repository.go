package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"investor-lookup/metrics"
	"investor-lookup/models"
	"investor-lookup/storage"
	"investor-lookup/utils"
)

// Column names the lookup understands. Matching is on the normalized form,
// so casing and stray whitespace in the spreadsheets do not matter.
const (
	colInvestorID           = "record id - contact"
	colInvestorEmail        = "email"
	colInvestorEmailAddress = "email address"

	colDealEmail          = "Email Address"
	colDealContactIDs     = "Associated Contact IDs"
	colDealAmount         = "Amount in SGD"
	colDealAmountFallback = "Total Investment Amount"

	colProjectSGD = "Crowdfunded Amount (SGD)"
	colProjectIDR = "Crowdfunded Amount (IDR)"
)

// ErrStoreNotReady is returned when the store lacks the lookup tables and no
// loader was provided to fill it.
var ErrStoreNotReady = errors.New("store is not loaded")

// Repository is the read-only, in-memory copy of the three tables with their
// optional columns resolved once.
type Repository struct {
	InvestorTable *models.Table
	ProjectTable  *models.Table

	Investors []models.Investor
	Deals     []models.Deal
	Projects  []models.Project

	investorHasEmail bool
	projectHasSGD    bool
	projectHasIDR    bool
}

// NewRepository binds the raw tables into typed records.
func NewRepository(investors, deals, projects *models.Table) *Repository {
	r := &Repository{InvestorTable: investors, ProjectTable: projects}
	r.bindInvestors(investors)
	r.bindDeals(deals)
	r.bindProjects(projects)
	return r
}

func (r *Repository) bindInvestors(t *models.Table) {
	ix := t.Index()
	idCol, hasID := ix.Lookup(colInvestorID)
	emailCol, hasEmail := ix.Lookup(colInvestorEmail)
	addrCol, hasAddr := ix.Lookup(colInvestorEmailAddress)
	r.investorHasEmail = hasEmail || hasAddr

	r.Investors = make([]models.Investor, len(t.Rows))
	for i := range t.Rows {
		rec := t.Record(i)
		inv := models.Investor{Record: rec, HasEmail: r.investorHasEmail}
		if hasID {
			inv.ID = rec.Get(idCol)
		}
		if hasEmail {
			inv.Email = rec.Get(emailCol)
		}
		if strings.TrimSpace(inv.Email) == "" && hasAddr {
			inv.Email = rec.Get(addrCol)
		}
		r.Investors[i] = inv
	}
}

func (r *Repository) bindDeals(t *models.Table) {
	ix := t.Index()
	emailCol, hasEmail := ix.Lookup(colDealEmail)
	idsCol, hasIDs := ix.Lookup(colDealContactIDs)
	// The amount column is chosen for the whole table, not per row.
	amountCol, hasAmount := ix.Lookup(colDealAmount, colDealAmountFallback)

	r.Deals = make([]models.Deal, len(t.Rows))
	for i := range t.Rows {
		rec := t.Record(i)
		d := models.Deal{HasEmail: hasEmail, HasContactIDs: hasIDs}
		if hasEmail {
			d.Email = rec.Get(emailCol)
		}
		if hasIDs {
			d.ContactIDs = rec.Get(idsCol)
		}
		if hasAmount {
			d.Amount = ParseAmount(rec.Get(amountCol))
		}
		r.Deals[i] = d
	}
}

func (r *Repository) bindProjects(t *models.Table) {
	ix := t.Index()
	sgdCol, hasSGD := ix.Lookup(colProjectSGD)
	idrCol, hasIDR := ix.Lookup(colProjectIDR)
	r.projectHasSGD, r.projectHasIDR = hasSGD, hasIDR

	r.Projects = make([]models.Project, len(t.Rows))
	for i := range t.Rows {
		rec := t.Record(i)
		p := models.Project{Record: rec}
		if hasSGD {
			p.CrowdfundedSGD = ParseAmount(rec.Get(sgdCol))
		}
		if hasIDR {
			p.CrowdfundedIDR = ParseAmount(rec.Get(idrCol))
		}
		r.Projects[i] = p
	}
}

// LoadFunc fills the store when it is not ready.
type LoadFunc func(ctx context.Context) error

// RepositoryProvider builds the Repository on first use and keeps it for the
// life of the process. Concurrent first callers share a single build, so the
// loader never runs twice at once.
type RepositoryProvider struct {
	reader storage.TableReader
	load   LoadFunc
	logger *utils.Logger

	group singleflight.Group
	mu    sync.RWMutex
	repo  *Repository
}

// NewRepositoryProvider creates a provider reading from reader. load may be
// nil, in which case an unloaded store is an error.
func NewRepositoryProvider(reader storage.TableReader, load LoadFunc, logger *utils.Logger) *RepositoryProvider {
	return &RepositoryProvider{reader: reader, load: load, logger: logger}
}

// Repository returns the cached repository, building it if needed. A failed
// build is not cached.
func (p *RepositoryProvider) Repository(ctx context.Context) (*Repository, error) {
	if repo := p.cached(); repo != nil {
		return repo, nil
	}

	v, err, _ := p.group.Do("repository", func() (interface{}, error) {
		if repo := p.cached(); repo != nil {
			return repo, nil
		}
		// Shared by every waiter, so one caller going away must not cancel it.
		repo, err := p.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.repo = repo
		p.mu.Unlock()
		return repo, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Repository), nil
}

func (p *RepositoryProvider) cached() *Repository {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.repo
}

func (p *RepositoryProvider) build(ctx context.Context) (*Repository, error) {
	ready, err := p.reader.Ready(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	if !ready {
		if p.load == nil {
			return nil, fmt.Errorf("repository: %w", ErrStoreNotReady)
		}
		p.logger.Info("[repository] Store not loaded yet, running loader")
		if err := p.load(ctx); err != nil {
			return nil, fmt.Errorf("repository: %w", err)
		}
	}

	tables := make(map[string]*models.Table, 3)
	for _, name := range []string{models.TableInvestors, models.TableDeals, models.TableProjects} {
		t, err := p.reader.ReadTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("repository: %w", err)
		}
		tables[name] = t
		metrics.TableRows.WithLabelValues(name).Set(float64(len(t.Rows)))
	}

	repo := NewRepository(tables[models.TableInvestors], tables[models.TableDeals], tables[models.TableProjects])
	p.logger.Info("[repository] Cached %d investors, %d deals, %d projects",
		len(repo.Investors), len(repo.Deals), len(repo.Projects))
	return repo, nil
}
