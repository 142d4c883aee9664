package services

import (
	"context"
	"fmt"

	"github.com/avilov/fieldsync/internal/access"
	"github.com/avilov/fieldsync/internal/identity"
	"github.com/avilov/fieldsync/internal/server/models"
)

// ownership builds the access predicate's input from a stored organization.
// This is the only place raw creator strings are parsed for access checks,
// so single-record and list paths cannot drift apart.
func ownership(org *models.Organization) access.Ownership {
	return access.Ownership{
		OwnerID: org.OwnerID,
		Creator: identity.Parse(org.CreatorURI),
	}
}

// ResolveAccess reports whether principal p may access the organization.
// Used by every detail/mutation path of the host application.
func (s *SyncService) ResolveAccess(ctx context.Context, p access.Principal, organizationID string, scope access.Scope) (bool, error) {
	org, err := s.repos.Organizations(s.db).GetByID(ctx, organizationID)
	if err != nil {
		return false, fmt.Errorf("organization lookup: %w", err)
	}
	return access.CanAccess(p, ownership(org), scope), nil
}

// AccessibleOrganizations returns the organizations p may see, in listing
// order. It filters through the same predicate ResolveAccess uses.
func (s *SyncService) AccessibleOrganizations(ctx context.Context, p access.Principal, scope access.Scope) ([]*models.Organization, error) {
	orgs, err := s.repos.Organizations(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("organization list: %w", err)
	}

	result := make([]*models.Organization, 0, len(orgs))
	for _, org := range orgs {
		if access.CanAccess(p, ownership(org), scope) {
			result = append(result, org)
		}
	}
	return result, nil
}
