package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	assert.Equal(t, "OR00008", Next(PrefixOrder, "OR00007"))
	assert.Equal(t, "DP00001", Next(PrefixDeposit, ""))
	assert.Equal(t, "WD00100", Next(PrefixWithdrawal, "WD00099"))
}

func TestNextResetsOnGarbage(t *testing.T) {
	assert.Equal(t, "OR00001", Next(PrefixOrder, "garbage"))
	assert.Equal(t, "DP00001", Next(PrefixDeposit, "DPxyz"))
	assert.Equal(t, "OR00001", Next(PrefixOrder, "OR-12"))
}

func TestNextBeyondPadding(t *testing.T) {
	assert.Equal(t, "OR100000", Next(PrefixOrder, "OR99999"))
}

func TestSequence(t *testing.T) {
	ids := Sequence(PrefixDeposit, "DP00002", 3)
	assert.Equal(t, []string{"DP00003", "DP00004", "DP00005"}, ids)

	assert.Nil(t, Sequence(PrefixOrder, "OR00001", 0))
	assert.Nil(t, Sequence(PrefixOrder, "OR00001", -1))
}

func TestSequenceFromEmpty(t *testing.T) {
	ids := Sequence(PrefixWithdrawal, "", 2)
	assert.Equal(t, []string{"WD00001", "WD00002"}, ids)
}
