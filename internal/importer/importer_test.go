package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

func TestParseDepositsSkipsBadRows(t *testing.T) {
	data := strings.Join([]string{
		"Shop ID,Date,Amount,Payment Mode",
		"S-001,2024-01-10,100.50,Crypto",
		"S-002,2024-01-11,-10,Crypto",
		"S-003,2024-01-12,75,Online Banking",
		"S-004,2024-01-13,20,e-wallet",
		"S-005,2024-01-14,5.25,ewallet",
	}, "\n")

	deposits, summary, err := ParseDeposits(data)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "row 3")
	assert.Contains(t, summary.Errors[0], "amount")

	require.Len(t, deposits, 4)
	assert.Equal(t, "S-001", deposits[0].ShopID)
	assert.Equal(t, "100.5", deposits[0].Amount.String())
	assert.Equal(t, enums.PaymentModeEwallet, deposits[2].PaymentMode)
	assert.Equal(t, enums.PaymentModeEwallet, deposits[3].PaymentMode)
}

func TestParseClientsNormalizesStatus(t *testing.T) {
	data := strings.Join([]string{
		"Shop ID,Client Name,Agent,KYC Date,Status",
		"S-001,Maribel,KY,2024-02-01,INPROCESS",
		"S-002,Rodrigo,LOVELY,2024-02-02,active",
	}, "\n")

	clients, summary, err := ParseClients(data)
	require.NoError(t, err)
	require.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, enums.ClientStatusInProcess, clients[0].Status)
	assert.Equal(t, enums.ClientStatusActive, clients[1].Status)
	assert.Equal(t, time.February, clients[0].KYCDate.Month())
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	data := strings.Join([]string{
		"shop id,CLIENT NAME,Agent,kyc date,STATUS",
		"S-001,Maribel,KY,2024-02-01,Active",
	}, "\n")

	_, summary, err := ParseClients(data)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
}

func TestParseMissingColumns(t *testing.T) {
	data := strings.Join([]string{
		"Shop ID,Date",
		"S-001,2024-01-10",
	}, "\n")

	_, _, err := ParseDeposits(data)
	require.Error(t, err)

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.ElementsMatch(t, []string{"amount", "payment mode"}, missing.Missing)
}

func TestPreviewCapsRows(t *testing.T) {
	lines := []string{"Shop ID,Date,Amount,Payment Mode"}
	for i := 0; i < 10; i++ {
		lines = append(lines, "S-001,2024-01-10,10,Crypto")
	}

	deposits, summary, err := PreviewDeposits(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.Len(t, deposits, PreviewRows)
	assert.Equal(t, PreviewRows, summary.SuccessCount)
}

func TestRunSkipsBlankLinesAndCRLF(t *testing.T) {
	data := "Shop ID,Date,Amount,Payment Mode\r\n\r\nS-001,2024-01-10,10,Crypto\r\n\r\n"

	deposits, summary, err := ParseDeposits(data)
	require.NoError(t, err)
	assert.Len(t, deposits, 1)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 0, summary.ErrorCount)
}

func TestRowErrorsReportAbsoluteLineNumbers(t *testing.T) {
	data := strings.Join([]string{
		"",
		"",
		"Shop ID,Date,Amount,Payment Mode",
		"S-001,2024-01-10,10,Crypto",
		"S-002,2024-01-11,-5,Crypto",
	}, "\n")

	_, summary, err := ParseDeposits(data)
	require.NoError(t, err)
	require.Len(t, summary.Errors, 1)

	// The bad row sits on line 5 of the source, blank leaders included.
	assert.Contains(t, summary.Errors[0], "row 5")
}

func TestParseDateFallsBackToNow(t *testing.T) {
	before := time.Now()
	parsed := parseDate("not-a-date")
	assert.False(t, parsed.Before(before.Add(-time.Second)))
}

func TestParseAgents(t *testing.T) {
	data := strings.Join([]string{
		"Shop ID,Agent",
		"S-001,LOVELY",
		",MISSING",
	}, "\n")

	assignments, summary, err := ParseAgents(data)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, AgentAssignment{ShopID: "S-001", Agent: "LOVELY"}, assignments[0])
	assert.Equal(t, 1, summary.ErrorCount)
}

func TestParseEmptyInput(t *testing.T) {
	_, _, err := ParseDeposits("")
	assert.Error(t, err)

	_, _, err = ParseDeposits("\n\n")
	assert.Error(t, err)
}
