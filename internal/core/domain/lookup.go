package domain

import "fmt"

// LookupKind names one of the reference lists served by the MF backend.
type LookupKind string

const (
	LookupCashierBranch LookupKind = "cashier-branch"
	LookupBranch        LookupKind = "branch"
	LookupCenter        LookupKind = "center"
	LookupGroup         LookupKind = "group"
)

// ParseLookupKind validates a kind coming from a request path.
func ParseLookupKind(raw string) (LookupKind, error) {
	switch k := LookupKind(raw); k {
	case LookupCashierBranch, LookupBranch, LookupCenter, LookupGroup:
		return k, nil
	default:
		return "", fmt.Errorf("unknown lookup kind %q", raw)
	}
}

// NeedsFilter reports whether the list is scoped by a parent id
// (centers by branch, groups by center).
func (k LookupKind) NeedsFilter() bool {
	return k == LookupCenter || k == LookupGroup
}

// LookupItem is one dropdown entry.
type LookupItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
