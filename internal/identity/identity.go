// Package identity extracts submitter identities from the raw "creator"
// strings attached to collected submissions. The collector encodes the
// submitter as "<token>|<timestamp>", where the token is usually an email
// address but can be an arbitrary string. The data comes from an external,
// uncontrolled system, so parsing is total: malformed input degrades to
// "no identity" and never produces an error.
package identity

import (
	"regexp"
	"strings"
	"time"
)

const separator = "|"

// wellFormed matches the strict diagnostic shape "token|YYYY-MM-DDThh:...".
var wellFormed = regexp.MustCompile(`^[^|]+\|\d{4}-\d{2}-\d{2}T\d{2}:`)

// timestampLayouts are tried in order when parsing the suffix. A suffix that
// matches none of them is simply dropped; the token is still usable.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
}

// CreatorIdentity is the parsed form of a raw creator string. It is derived
// on demand and never persisted.
type CreatorIdentity struct {
	// Raw is the original string as stored on the owning record.
	Raw string
	// Token is the normalized identity token: the part before the first
	// separator, trimmed and lower-cased. Tokens compare case-insensitively
	// throughout the system, so normalization happens once, here.
	Token string
	// SubmittedAt is the parsed timestamp suffix. Zero when the suffix is
	// absent or unparseable.
	SubmittedAt time.Time
}

// Parse extracts a CreatorIdentity from raw. It returns nil when raw is
// empty, lacks the separator, or yields an empty token. It never fails.
func Parse(raw string) *CreatorIdentity {
	if raw == "" {
		return nil
	}

	idx := strings.Index(raw, separator)
	if idx < 0 {
		return nil
	}

	token := strings.ToLower(strings.TrimSpace(raw[:idx]))
	if token == "" {
		return nil
	}

	id := &CreatorIdentity{Raw: raw, Token: token}

	suffix := strings.TrimSpace(raw[idx+1:])
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, suffix); err == nil {
			id.SubmittedAt = ts
			break
		}
	}

	return id
}

// IsWellFormed reports whether raw matches the strict "token|timestamp"
// shape. It exists for diagnostics and reporting only: a failing check must
// not block identity extraction, since the token part is still usable even
// when the timestamp suffix is malformed.
func IsWellFormed(raw string) bool {
	return wellFormed.MatchString(raw)
}

// NormalizeToken lower-cases and trims a token so that it can be compared
// against CreatorIdentity.Token.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
