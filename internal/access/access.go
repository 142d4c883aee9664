// Package access implements the hybrid ownership predicate used everywhere a
// record must be filtered by who may see it. "Hybrid" because it prefers the
// explicit local ownership link and falls back to matching the submitter
// identity embedded in collected data.
//
// There is exactly one implementation of the predicate. List filtering and
// single-record checks must both call CanAccess; reimplementing the logic at
// a call site is a defect.
package access

import "github.com/avilov/fieldsync/internal/identity"

// Principal is an already-authenticated caller. This package never
// authenticates; it only consumes the resolved identity.
type Principal struct {
	ID    string
	Email string
}

// Scope carries the coarse role flags resolved by the host application.
type Scope struct {
	// SeeAll is set for administrators and coordinators, who bypass
	// ownership checks entirely.
	SeeAll bool
}

// Ownership is the ownership context of one record: the explicit owner link,
// if any, and the identity parsed from the record's raw creator string.
type Ownership struct {
	// OwnerID is the explicit owner (technician) id. Empty when unset.
	OwnerID string
	// Creator is the parsed creator identity. Nil when the record carries
	// none (missing or malformed raw string).
	Creator *identity.CreatorIdentity
}

// CanAccess reports whether p may access a record with ownership own under
// scope. Pure and side-effect free.
//
// Precedence: see-all scope wins outright; then an explicit owner match;
// then the creator-token fallback compared case-insensitively against the
// principal's email. Explicit ownership granting U1 never revokes the
// fallback grant for the submitter: both paths can admit different
// principals to the same record.
func CanAccess(p Principal, own Ownership, scope Scope) bool {
	if scope.SeeAll {
		return true
	}

	if own.OwnerID != "" && own.OwnerID == p.ID {
		return true
	}

	if own.Creator != nil {
		if email := identity.NormalizeToken(p.Email); email != "" && own.Creator.Token == email {
			return true
		}
	}

	return false
}
