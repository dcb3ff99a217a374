package cli

import (
	"fmt"
	"sort"
	"strings"

	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/services/invoicing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	accent  = lipgloss.Color("#2563EB") // blue
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#16A34A") // green
	danger  = lipgloss.Color("#DC2626") // red
	warning = lipgloss.Color("#D97706") // amber
	info    = lipgloss.Color("#0284C7")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	borderStyle = lipgloss.NewStyle().Foreground(dim)

	statusColors = map[models.InvoiceStatus]lipgloss.Color{
		models.StatusPaid:    success,
		models.StatusUnpaid:  danger,
		models.StatusPending: warning,
	}

	variantStyles = map[models.NotificationVariant]lipgloss.Style{
		models.NotificationSuccess: lipgloss.NewStyle().Bold(true).Foreground(success),
		models.NotificationError:   lipgloss.NewStyle().Bold(true).Foreground(danger),
		models.NotificationWarning: lipgloss.NewStyle().Bold(true).Foreground(warning),
		models.NotificationInfo:    lipgloss.NewStyle().Bold(true).Foreground(info),
	}

	variantIcons = map[models.NotificationVariant]string{
		models.NotificationSuccess: "✓",
		models.NotificationError:   "✗",
		models.NotificationWarning: "!",
		models.NotificationInfo:    "i",
	}

	money = message.NewPrinter(language.AmericanEnglish)
)

const (
	statusColumn = 4
	idColumn     = 5
)

func formatAmount(amount float64) string {
	return money.Sprintf("$%.2f", amount)
}

// RenderInvoices draws the invoice list as a table: name, number, due date,
// amount and a coloured status.
func RenderInvoices(invoices []models.Invoice) string {
	if len(invoices) == 0 {
		return dimStyle.Render("No invoices found") + "\n"
	}

	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.Name,
			inv.Number,
			inv.DueDate.Format("Jan 2, 2006"),
			formatAmount(inv.Amount),
			string(inv.Status),
			inv.ID,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("NAME", "NUMBER", "DUE DATE", "AMOUNT", "STATUS", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusColumn && row >= 0 && row < len(invoices) {
				return cellStyle.Foreground(statusColors[invoices[row].Status])
			}
			if col == idColumn {
				return cellStyle.Foreground(dim)
			}
			return cellStyle
		})

	return t.Render() + "\n" + dimStyle.Render(fmt.Sprintf("%d invoice(s)", len(invoices))) + "\n"
}

func RenderNotification(n models.Notification) string {
	style, ok := variantStyles[n.Variant]
	if !ok {
		style = lipgloss.NewStyle().Bold(true)
	}
	var b strings.Builder
	b.WriteString(style.Render(variantIcons[n.Variant] + " " + n.Title))
	b.WriteString("\n")
	if n.Description != "" && n.Description != n.Title {
		b.WriteString("  " + dimStyle.Render(n.Description) + "\n")
	}
	return b.String()
}

// RenderFieldErrors lists validation messages, one field per line.
func RenderFieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	style := variantStyles[models.NotificationError]
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %s\n", style.Render("✗ "+k+":"), fields[k])
	}
	return b.String()
}

func RenderImport(res *invoicing.ImportResult) string {
	var b strings.Builder
	b.WriteString(RenderNotification(invoicing.ImportNotification(res)))
	fmt.Fprintf(&b, "  added %d, skipped %d\n", len(res.Added), len(res.Skipped))
	for _, s := range res.Skipped {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("row %d:", s.Row)), s.Reason)
	}
	if len(res.Added) > 0 {
		b.WriteString(RenderInvoices(res.Added))
	}
	return b.String()
}
