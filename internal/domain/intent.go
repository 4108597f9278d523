package domain

import (
	"fmt"
	"strings"
)

// IntentKind is the closed set of customer actions a session accepts.
type IntentKind int

const (
	IntentSearch IntentKind = iota + 1
	IntentAddToTrolley
	IntentCheckout
	IntentCancel
	IntentCloseReceipt
)

var intentNames = map[IntentKind]string{
	IntentSearch:       "search",
	IntentAddToTrolley: "add",
	IntentCheckout:     "checkout",
	IntentCancel:       "cancel",
	IntentCloseReceipt: "close",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(k))
}

// ParseIntentKind maps a command word to its kind.
func ParseIntentKind(s string) (IntentKind, error) {
	word := strings.ToLower(strings.TrimSpace(s))
	for k, name := range intentNames {
		if name == word {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownIntent, s)
}

// Intent is one customer action plus its arguments.
type Intent struct {
	Kind      IntentKind
	Keyword   string
	ProductID string
	Quantity  int
}

func Search(keyword string) Intent {
	return Intent{Kind: IntentSearch, Keyword: keyword}
}

// AddToTrolley selects productID from the last search. An empty id means
// the currently previewed product; a zero quantity means one. Negative
// quantities are kept and rejected by the session.
func AddToTrolley(productID string, qty int) Intent {
	if qty == 0 {
		qty = 1
	}
	return Intent{Kind: IntentAddToTrolley, ProductID: productID, Quantity: qty}
}

func Checkout() Intent { return Intent{Kind: IntentCheckout} }

func Cancel() Intent { return Intent{Kind: IntentCancel} }

func CloseReceipt() Intent { return Intent{Kind: IntentCloseReceipt} }
