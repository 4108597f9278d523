package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/happyshop/happyshop/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Width(68)

	receiptStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(success).
			Padding(0, 2).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	priceStyle    = lipgloss.NewStyle().Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderView formats a session view: status, image, trolley and receipt.
func RenderView(v domain.View) string {
	var b strings.Builder

	status := v.Status
	if strings.HasPrefix(status, "Checkout failed") {
		status = failStyle.Render(status)
	}
	b.WriteString(boxStyle.Render(headerStyle.Render("happyshop") + "\n" + status))
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render("image: "+v.ImageRef) + "\n\n")

	b.WriteString("  " + titleStyle.Render("Trolley") + "\n")
	b.WriteString("  " + separatorLine + "\n")
	if v.Trolley == "" {
		b.WriteString("  " + dimStyle.Render("(empty)") + "\n")
	} else {
		b.WriteString(indent(v.Trolley))
	}

	if v.Receipt != "" {
		b.WriteString("\n")
		b.WriteString(receiptStyle.Render(passStyle.Render("Receipt") + "\n" + strings.TrimRight(v.Receipt, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderProducts formats search results with a stock gauge per product.
func RenderProducts(products []domain.Product, currency string) string {
	if len(products) == 0 {
		return "  " + dimStyle.Render("No products found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, p := range products {
		fmt.Fprintf(&b, "  %s %s %s  %s %s\n",
			titleStyle.Render(padRight(p.ID, 6)),
			padRight(p.Description, 26),
			priceStyle.Render(padRight(currency+p.UnitPrice.StringFixed(2), 10)),
			stockBar(p.StockQuantity, 10),
			dimStyle.Render(fmt.Sprintf("%d in stock", p.StockQuantity)),
		)
	}
	return b.String()
}

// RenderOrders formats the order history.
func RenderOrders(orders []domain.Order, currency string) string {
	if len(orders) == 0 {
		return "  " + dimStyle.Render("No orders found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Order History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, o := range orders {
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			dimStyle.Render(o.OrderedAt().Format(domain.OrderTimeLayout)),
			faintStyle.Render(o.ID()),
			priceStyle.Render(currency+o.Total().StringFixed(2)),
			dimStyle.Render(fmt.Sprintf("%d items", o.TotalQuantity())),
		)
	}
	return b.String()
}

// RenderHelp lists the interactive commands.
func RenderHelp() string {
	rows := [][2]string{
		{"search <keyword>", "find products by id or description"},
		{"add [id] [qty]", "add a product from the last search"},
		{"checkout", "buy everything in the trolley"},
		{"cancel", "empty the trolley"},
		{"close", "close the receipt"},
		{"view", "show the current screen"},
		{"quit", "leave the shop"},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(padRight(r[0], 18)), dimStyle.Render(r[1]))
	}
	return b.String()
}

func stockBar(stock, width int) string {
	filled := max(0, min(stock*width/100, width))
	if stock > 0 && filled == 0 {
		filled = 1
	}
	empty := width - filled

	color := stockColor(stock)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func stockColor(stock int) lipgloss.Color {
	switch {
	case stock >= 20:
		return success
	case stock > 0:
		return warning
	default:
		return danger
	}
}

func indent(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
