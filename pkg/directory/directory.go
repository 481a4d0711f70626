// Package directory defines the staff and location directory boundary.
//
// The scheduling core consumes the directory read-only; the records belong to
// the surrounding academy-management application. A yaml-backed provider is
// included for the CLI and tests.
package directory

import (
	"errors"
	"fmt"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// ErrOrganizationNotFound is returned when an organization ID is not present
// in the directory
var ErrOrganizationNotFound = errors.New("organization not found in directory")

// Provider supplies the staff and location directories for an organization
type Provider interface {
	Organization(orgID string) (*model.Organization, error)
	ListStaff(orgID string) ([]model.Staff, error)
	ListLocations(orgID string) ([]model.Location, error)
}

// StaticProvider is an in-memory Provider built from preloaded records
type StaticProvider struct {
	organizations map[string]model.Organization
	staff         map[string][]model.Staff
	locations     map[string][]model.Location
}

// NewStaticProvider builds a provider from the given organizations and their
// staff and location lists, keyed by organization ID
func NewStaticProvider(orgs []model.Organization, staff map[string][]model.Staff, locations map[string][]model.Location) *StaticProvider {
	orgsByID := make(map[string]model.Organization, len(orgs))
	for _, org := range orgs {
		orgsByID[org.ID] = org
	}
	return &StaticProvider{
		organizations: orgsByID,
		staff:         staff,
		locations:     locations,
	}
}

// Organization returns the organization record for the given ID
func (p *StaticProvider) Organization(orgID string) (*model.Organization, error) {
	org, ok := p.organizations[orgID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, orgID)
	}
	return &org, nil
}

// ListStaff returns the staff directory for an organization
func (p *StaticProvider) ListStaff(orgID string) ([]model.Staff, error) {
	if _, ok := p.organizations[orgID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, orgID)
	}
	return p.staff[orgID], nil
}

// ListLocations returns the location directory for an organization
func (p *StaticProvider) ListLocations(orgID string) ([]model.Location, error) {
	if _, ok := p.organizations[orgID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, orgID)
	}
	return p.locations[orgID], nil
}
