package enums

import "fmt"

// ClientStatus tracks where a client sits in its lifecycle.
type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "Active"
	ClientStatusInactive   ClientStatus = "Inactive"
	ClientStatusInProcess  ClientStatus = "In Process"
	ClientStatusEliminated ClientStatus = "Eliminated"
)

var validClientStatuses = []ClientStatus{
	ClientStatusActive,
	ClientStatusInactive,
	ClientStatusInProcess,
	ClientStatusEliminated,
}

var clientStatusSynonyms = map[string]ClientStatus{
	"active":     ClientStatusActive,
	"inactive":   ClientStatusInactive,
	"inprocess":  ClientStatusInProcess,
	"pending":    ClientStatusInProcess,
	"eliminated": ClientStatusEliminated,
}

// String implements fmt.Stringer.
func (s ClientStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ClientStatus.
func (s ClientStatus) IsValid() bool {
	for _, candidate := range validClientStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseClientStatus converts raw input into a ClientStatus. Matching is
// case-insensitive and tolerates the separator variants seen in imports.
func ParseClientStatus(value string) (ClientStatus, error) {
	if status, ok := clientStatusSynonyms[normalizeKey(value)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid client status %q", value)
}
