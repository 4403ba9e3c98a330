package importer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

var (
	clientFields     = []string{"shop id", "client name", "agent", "kyc date", "status"}
	orderFields      = []string{"shop id", "date", "location", "price", "status"}
	depositFields    = []string{"shop id", "date", "amount", "payment mode"}
	withdrawalFields = depositFields
	agentFields      = []string{"shop id", "agent"}
)

// ParseClients parses a full client CSV.
func ParseClients(data string) ([]models.Client, Summary, error) {
	return run(data, clientFields, 0, parseClientRow)
}

// PreviewClients parses at most the first PreviewRows data rows.
func PreviewClients(data string) ([]models.Client, Summary, error) {
	return run(data, clientFields, PreviewRows, parseClientRow)
}

func parseClientRow(values []string, index map[string]int) (models.Client, error) {
	shopID := field(values, index, "shop id")
	if shopID == "" {
		return models.Client{}, fmt.Errorf("shop id is required")
	}
	name := field(values, index, "client name")
	if name == "" {
		return models.Client{}, fmt.Errorf("client name is required")
	}
	agent := field(values, index, "agent")
	if agent == "" {
		return models.Client{}, fmt.Errorf("agent is required")
	}
	status, err := enums.ParseClientStatus(field(values, index, "status"))
	if err != nil {
		return models.Client{}, err
	}
	return models.Client{
		ShopID:     shopID,
		ClientName: name,
		Agent:      agent,
		KYCDate:    parseDate(field(values, index, "kyc date")),
		Status:     status,
	}, nil
}

// ParseOrders parses a full order CSV. Order ids are assigned later by the
// store, not by the importer.
func ParseOrders(data string) ([]models.Order, Summary, error) {
	return run(data, orderFields, 0, parseOrderRow)
}

// PreviewOrders parses at most the first PreviewRows data rows.
func PreviewOrders(data string) ([]models.Order, Summary, error) {
	return run(data, orderFields, PreviewRows, parseOrderRow)
}

func parseOrderRow(values []string, index map[string]int) (models.Order, error) {
	shopID := field(values, index, "shop id")
	if shopID == "" {
		return models.Order{}, fmt.Errorf("shop id is required")
	}
	location := field(values, index, "location")
	if location == "" {
		return models.Order{}, fmt.Errorf("location is required")
	}
	price, err := parsePositiveAmount(field(values, index, "price"), "price")
	if err != nil {
		return models.Order{}, err
	}
	status, err := enums.ParseOrderStatus(field(values, index, "status"))
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		ShopID:   shopID,
		Date:     parseDate(field(values, index, "date")),
		Location: location,
		Price:    price,
		Status:   status,
	}, nil
}

// ParseDeposits parses a full deposit CSV. Deposit ids are assigned later by
// the store.
func ParseDeposits(data string) ([]models.Deposit, Summary, error) {
	return run(data, depositFields, 0, parseDepositRow)
}

// PreviewDeposits parses at most the first PreviewRows data rows.
func PreviewDeposits(data string) ([]models.Deposit, Summary, error) {
	return run(data, depositFields, PreviewRows, parseDepositRow)
}

func parseDepositRow(values []string, index map[string]int) (models.Deposit, error) {
	shopID := field(values, index, "shop id")
	if shopID == "" {
		return models.Deposit{}, fmt.Errorf("shop id is required")
	}
	amount, err := parsePositiveAmount(field(values, index, "amount"), "amount")
	if err != nil {
		return models.Deposit{}, err
	}
	mode, err := enums.ParsePaymentMode(field(values, index, "payment mode"))
	if err != nil {
		return models.Deposit{}, err
	}
	return models.Deposit{
		ShopID:      shopID,
		Date:        parseDate(field(values, index, "date")),
		Amount:      amount,
		PaymentMode: mode,
	}, nil
}

// ParseWithdrawals parses a full withdrawal CSV.
func ParseWithdrawals(data string) ([]models.Withdrawal, Summary, error) {
	return run(data, withdrawalFields, 0, parseWithdrawalRow)
}

// PreviewWithdrawals parses at most the first PreviewRows data rows.
func PreviewWithdrawals(data string) ([]models.Withdrawal, Summary, error) {
	return run(data, withdrawalFields, PreviewRows, parseWithdrawalRow)
}

func parseWithdrawalRow(values []string, index map[string]int) (models.Withdrawal, error) {
	deposit, err := parseDepositRow(values, index)
	if err != nil {
		return models.Withdrawal{}, err
	}
	return models.Withdrawal{
		ShopID:      deposit.ShopID,
		Date:        deposit.Date,
		Amount:      deposit.Amount,
		PaymentMode: deposit.PaymentMode,
	}, nil
}

// AgentAssignment maps a shop id to its (new) agent.
type AgentAssignment struct {
	ShopID string
	Agent  string
}

// ParseAgents parses an agent-reassignment CSV.
func ParseAgents(data string) ([]AgentAssignment, Summary, error) {
	return run(data, agentFields, 0, parseAgentRow)
}

// PreviewAgents parses at most the first PreviewRows data rows.
func PreviewAgents(data string) ([]AgentAssignment, Summary, error) {
	return run(data, agentFields, PreviewRows, parseAgentRow)
}

func parseAgentRow(values []string, index map[string]int) (AgentAssignment, error) {
	shopID := field(values, index, "shop id")
	if shopID == "" {
		return AgentAssignment{}, fmt.Errorf("shop id is required")
	}
	agent := field(values, index, "agent")
	if agent == "" {
		return AgentAssignment{}, fmt.Errorf("agent is required")
	}
	return AgentAssignment{ShopID: shopID, Agent: agent}, nil
}

func parsePositiveAmount(value, name string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s is required", name)
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, value)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be greater than zero", name)
	}
	return amount, nil
}
