package enums

import "fmt"

// PaymentMode describes how a deposit or withdrawal settles.
type PaymentMode string

const (
	PaymentModeCrypto        PaymentMode = "Crypto"
	PaymentModeOnlineBanking PaymentMode = "Online Banking"
	PaymentModeEwallet       PaymentMode = "Ewallet"
)

var validPaymentModes = []PaymentMode{
	PaymentModeCrypto,
	PaymentModeOnlineBanking,
	PaymentModeEwallet,
}

var paymentModeSynonyms = map[string]PaymentMode{
	"crypto":         PaymentModeCrypto,
	"cryptocurrency": PaymentModeCrypto,
	"onlinebanking":  PaymentModeOnlineBanking,
	"banking":        PaymentModeOnlineBanking,
	"ewallet":        PaymentModeEwallet,
}

// String implements fmt.Stringer.
func (p PaymentMode) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMode.
func (p PaymentMode) IsValid() bool {
	for _, candidate := range validPaymentModes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMode converts raw input into a PaymentMode. "e-wallet",
// "E-Wallet" and "ewallet" all normalize to Ewallet.
func ParsePaymentMode(value string) (PaymentMode, error) {
	if mode, ok := paymentModeSynonyms[normalizeKey(value)]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("invalid payment mode %q", value)
}
