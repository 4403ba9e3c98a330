// Package ident derives sequential display ids (OR00001, DP00001, WD00001)
// from the tail of the currently loaded in-memory collection. The counter is
// purely a function of the last id: no I/O, no global state.
//
// Two near-simultaneous writers can therefore mint the same id. The upstream
// system behaves the same way and does not define which writer should win, so
// the behavior is kept rather than papered over.
package ident

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	PrefixOrder      = "OR"
	PrefixDeposit    = "DP"
	PrefixWithdrawal = "WD"

	padWidth = 5
)

// Next returns the id following lastID for the given prefix. An empty or
// unparsable lastID restarts the counter at 1; that reset is accepted
// behavior, not corrected.
func Next(prefix, lastID string) string {
	return fmt.Sprintf("%s%0*d", prefix, padWidth, numericTail(prefix, lastID)+1)
}

// Sequence returns n consecutive ids following lastID.
func Sequence(prefix, lastID string, n int) []string {
	if n <= 0 {
		return nil
	}
	start := numericTail(prefix, lastID) + 1
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%0*d", prefix, padWidth, start+i)
	}
	return ids
}

func numericTail(prefix, lastID string) int {
	if lastID == "" {
		return 0
	}
	suffix := strings.TrimPrefix(lastID, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
