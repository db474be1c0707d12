// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations, no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/rios0rios0/gitfleet/domain"
)

// ---------------------------------------------------------------------------
// SpyProvider
// ---------------------------------------------------------------------------

// SpyProvider implements domain.Provider as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyProvider struct {
	// --- identity ---
	ProviderName string
	Description  string

	// --- ValidateConfiguration ---
	Valid bool
	// spy: number of calls
	ValidateCalls int

	// --- FetchRepositories ---
	Repositories []domain.Repository
	FetchErr     error
	// spy: number of calls
	FetchCalls int
}

var _ domain.Provider = (*SpyProvider)(nil)

func (p *SpyProvider) Name() string { return p.ProviderName }

func (p *SpyProvider) String() string {
	if p.Description != "" {
		return p.Description
	}
	return p.ProviderName
}

func (p *SpyProvider) ValidateConfiguration() bool {
	p.ValidateCalls++
	return p.Valid
}

func (p *SpyProvider) FetchRepositories(_ context.Context) ([]domain.Repository, error) {
	p.FetchCalls++
	if p.FetchErr != nil {
		return nil, p.FetchErr
	}
	return p.Repositories, nil
}

// ---------------------------------------------------------------------------
// DummyProvider satisfies the interface but does nothing
// ---------------------------------------------------------------------------

// DummyProvider is a no-op implementation of domain.Provider.
// Use it only for interface compliance tests or as a placeholder.
type DummyProvider struct{}

var _ domain.Provider = (*DummyProvider)(nil)

func (d *DummyProvider) Name() string                { return "dummy" }
func (d *DummyProvider) String() string              { return "dummy" }
func (d *DummyProvider) ValidateConfiguration() bool { return true }

func (d *DummyProvider) FetchRepositories(_ context.Context) ([]domain.Repository, error) {
	return nil, nil
}
