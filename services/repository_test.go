package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investor-lookup/models"
)

type fakeReader struct {
	mu     sync.Mutex
	ready  bool
	reads  int64
	tables map[string]*models.Table
}

func (f *fakeReader) Ready(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready, nil
}

func (f *fakeReader) ReadTable(ctx context.Context, name string) (*models.Table, error) {
	atomic.AddInt64(&f.reads, 1)
	t, ok := f.tables[name]
	if !ok {
		return nil, errors.New("no such table")
	}
	return t, nil
}

func (f *fakeReader) markReady() {
	f.mu.Lock()
	f.ready = true
	f.mu.Unlock()
}

func newFakeReader(ready bool) *fakeReader {
	return &fakeReader{
		ready: ready,
		tables: map[string]*models.Table{
			models.TableInvestors: investorsTable(),
			models.TableDeals:     scenarioDeals(),
			models.TableProjects:  projectsTable(),
		},
	}
}

func TestRepositoryProviderLoadsOnceUnderConcurrency(t *testing.T) {
	reader := newFakeReader(false)
	var loads int64
	load := func(ctx context.Context) error {
		atomic.AddInt64(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		reader.markReady()
		return nil
	}
	p := NewRepositoryProvider(reader, load, newTestLogger())

	var wg sync.WaitGroup
	repos := make([]*Repository, 16)
	for i := range repos {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo, err := p.Repository(context.Background())
			assert.NoError(t, err)
			repos[i] = repo
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&loads), "loader must run exactly once")
	for _, r := range repos {
		assert.Same(t, repos[0], r)
	}
	assert.Equal(t, int64(3), atomic.LoadInt64(&reader.reads))
}

func TestRepositoryProviderCachesAfterFirstBuild(t *testing.T) {
	reader := newFakeReader(true)
	p := NewRepositoryProvider(reader, nil, newTestLogger())

	first, err := p.Repository(context.Background())
	require.NoError(t, err)
	second, err := p.Repository(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(3), atomic.LoadInt64(&reader.reads))
	assert.Len(t, first.Investors, 4)
}

func TestRepositoryProviderNotReadyWithoutLoader(t *testing.T) {
	p := NewRepositoryProvider(newFakeReader(false), nil, newTestLogger())
	_, err := p.Repository(context.Background())
	assert.True(t, errors.Is(err, ErrStoreNotReady))
}

func TestRepositoryProviderDoesNotCacheFailure(t *testing.T) {
	reader := newFakeReader(false)
	boom := errors.New("spreadsheet missing")
	attempts := 0
	load := func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return boom
		}
		reader.markReady()
		return nil
	}
	p := NewRepositoryProvider(reader, load, newTestLogger())

	_, err := p.Repository(context.Background())
	require.True(t, errors.Is(err, boom))

	repo, err := p.Repository(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.Equal(t, 2, attempts)
}

func TestRepositoryProviderLoadSurvivesCanceledCaller(t *testing.T) {
	reader := newFakeReader(false)
	load := func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		reader.markReady()
		return nil
	}
	p := NewRepositoryProvider(reader, load, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo, err := p.Repository(ctx)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestNewRepositoryBindsOptionalColumns(t *testing.T) {
	investors := &models.Table{
		Columns: []string{"Record ID - Contact ", "EMAIL", "Email Address"},
		Rows: [][]string{
			{"C1", "", "fallback@x.com"},
			{"C2", "main@x.com", "other@x.com"},
		},
	}
	deals := &models.Table{
		Columns: []string{"email address", "ASSOCIATED CONTACT IDS"},
		Rows:    [][]string{{"x@y.com", "C1"}},
	}
	repo := NewRepository(investors, deals, &models.Table{})

	assert.Equal(t, "C1", repo.Investors[0].ID)
	assert.Equal(t, "fallback@x.com", repo.Investors[0].Email)
	assert.Equal(t, "main@x.com", repo.Investors[1].Email)
	assert.True(t, repo.Investors[0].HasEmail)

	require.Len(t, repo.Deals, 1)
	assert.True(t, repo.Deals[0].HasEmail)
	assert.True(t, repo.Deals[0].HasContactIDs)
	assert.Equal(t, 0.0, repo.Deals[0].Amount)
	assert.Empty(t, repo.Projects)
	assert.False(t, repo.projectHasSGD)
}
