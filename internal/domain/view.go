package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// PlaceholderImage is shown when no product is selected.
const PlaceholderImage = "imageHolder.jpg"

// View is everything the presentation layer needs after a session call.
type View struct {
	ImageRef string `json:"image"`
	Status   string `json:"status"`
	Trolley  string `json:"trolley"`
	Receipt  string `json:"receipt"`
}

// ImageURI resolves a product image name under folder to an absolute
// file:// URI. An empty name resolves to the placeholder.
func ImageURI(folder, name string) string {
	if strings.TrimSpace(name) == "" {
		return PlaceholderImage
	}
	abs, err := filepath.Abs(filepath.Join(folder, name))
	if err != nil {
		return name
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

const descWidth = 24

// FormatLines renders lines one per row followed by a total row.
func FormatLines(lines []Line, currency string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%-6s %-*s (%d) %s%s\n",
			l.ProductID, descWidth, truncate(l.Description, descWidth),
			l.Quantity, currency, l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "%-6s %-*s %s%s\n", "Total", descWidth, "", currency, SumLines(lines).StringFixed(2))
	return b.String()
}

// FormatReceipt renders a confirmed order.
func FormatReceipt(o Order, currency string) string {
	return fmt.Sprintf("Order_ID: %s\nOrdered_Date_Time: %s\n%s",
		o.ID(), o.OrderedAt().Format(OrderTimeLayout), FormatLines(o.lines, currency))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
