package importer

import (
	"strings"

	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
)

const exportDateLayout = "2006-01-02"

// ExportCSV renders a header row followed by one quoted row per record.
// Inner quotes are doubled per the usual CSV convention.
func ExportCSV(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		for i, value := range row {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`"` + strings.ReplaceAll(value, `"`, `""`) + `"`)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ClientsCSV exports the client collection.
func ClientsCSV(clients []models.Client) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			c.ShopID,
			c.ClientName,
			c.Agent,
			c.KYCDate.Format(exportDateLayout),
			c.Status.String(),
		})
	}
	return ExportCSV([]string{"Shop ID", "Client Name", "Agent", "KYC Date", "Status"}, rows)
}

// OrdersCSV exports the order collection. Prices render as two-decimal
// strings.
func OrdersCSV(orders []models.Order) string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.OrderID,
			o.ShopID,
			o.ClientName,
			o.Agent,
			o.Date.Format(exportDateLayout),
			o.Location,
			o.Price.StringFixed(2),
			o.Status.String(),
		})
	}
	return ExportCSV([]string{"Order ID", "Shop ID", "Client Name", "Agent", "Date", "Location", "Price", "Status"}, rows)
}

// DepositsCSV exports the deposit collection.
func DepositsCSV(deposits []models.Deposit) string {
	rows := make([][]string, 0, len(deposits))
	for _, d := range deposits {
		rows = append(rows, []string{
			d.DepositID,
			d.ShopID,
			d.ClientName,
			d.Agent,
			d.Date.Format(exportDateLayout),
			d.Amount.StringFixed(2),
			d.PaymentMode.String(),
		})
	}
	return ExportCSV([]string{"Deposit ID", "Shop ID", "Client Name", "Agent", "Date", "Amount", "Payment Mode"}, rows)
}

// WithdrawalsCSV exports the withdrawal collection.
func WithdrawalsCSV(withdrawals []models.Withdrawal) string {
	rows := make([][]string, 0, len(withdrawals))
	for _, w := range withdrawals {
		rows = append(rows, []string{
			w.WithdrawalID,
			w.ShopID,
			w.ClientName,
			w.Agent,
			w.Date.Format(exportDateLayout),
			w.Amount.StringFixed(2),
			w.PaymentMode.String(),
		})
	}
	return ExportCSV([]string{"Withdrawal ID", "Shop ID", "Client Name", "Agent", "Date", "Amount", "Payment Mode"}, rows)
}
