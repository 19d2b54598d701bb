package ui

import (
	"fmt"
	"strings"

	"bincheck/internal/bin"
	"bincheck/internal/ui/textutil"

	"github.com/charmbracelet/lipgloss"
)

// minPanelWidth is the narrowest result panel; below twice this the
// panels stack vertically.
const minPanelWidth = 34

// field is one label/value row inside a result panel.
type field struct {
	label string
	value string
	style lipgloss.Style
}

// renderPanel draws a titled box of label/value rows, width columns wide.
func renderPanel(title, subtitle string, fields []field, width int) string {
	inner := width - Styles.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	labelW := 0
	for _, f := range fields {
		if w := textutil.VisualWidth(f.label); w > labelW {
			labelW = w
		}
	}
	valueW := inner - labelW - 2

	var b strings.Builder
	b.WriteString(Styles.PanelTitle.Render(title))
	if subtitle != "" {
		b.WriteString("\n" + Styles.Hint.Render(textutil.Truncate(subtitle, inner)))
	}
	b.WriteString("\n")
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(Styles.Label.Render(textutil.PadRight(f.label, labelW)))
		b.WriteString("  ")
		b.WriteString(f.style.Render(textutil.Truncate(textutil.OrDash(f.value), valueW)))
	}
	return Styles.Panel.Width(width - Styles.Panel.GetHorizontalBorderSize()).Render(b.String())
}

// renderCardPanel shows scheme, type and category.
func renderCardPanel(r *bin.Result, width int) string {
	return renderPanel("Card Information", "Detailed card specifications", []field{
		{"Card Scheme", r.Scheme, Styles.Value},
		{"Card Type", r.Type, Styles.Value},
		{"Category", r.Category, Styles.Value},
	}, width)
}

// renderBankPanel shows the issuing institution and its location.
func renderBankPanel(r *bin.Result, width int) string {
	location := strings.TrimSpace(r.Country.Emoji + " " + r.Country.Name)
	codes := strings.TrimSpace(r.Country.Alpha2 + " " + r.Country.Alpha3)
	return renderPanel("Issuing Institution", "Bank details and contact information", []field{
		{"Bank", r.Bank.Name, Styles.Value},
		{"Phone", r.Bank.Phone, Styles.Link},
		{"Website", r.Bank.Href(), Styles.Link},
		{"Location", location, Styles.Value},
		{"Codes", codes, Styles.Badge},
	}, width)
}

// renderVerificationPanel shows IIN, card length and the Luhn flag.
func renderVerificationPanel(r *bin.Result, width int) string {
	luhnStyle := Styles.BadgeInvalid
	if r.Number.Luhn {
		luhnStyle = Styles.BadgeValid
	}
	length := ""
	if r.Number.Length > 0 {
		length = fmt.Sprintf("%d digits", r.Number.Length)
	}
	return renderPanel("Verification Details", "Card number specifications and validation", []field{
		{"IIN/BIN", r.Number.IIN, Styles.Value},
		{"Card Length", length, Styles.Value},
		{"Luhn Algorithm", r.Number.LuhnLabel(), luhnStyle},
	}, width)
}

// renderResult lays out the three result panels for the given total width:
// side by side when there is room, stacked otherwise.
func renderResult(r *bin.Result, width int) string {
	if r == nil {
		return ""
	}
	if width >= 3*minPanelWidth {
		w := width / 3
		return lipgloss.JoinHorizontal(lipgloss.Top,
			renderCardPanel(r, w),
			renderBankPanel(r, w),
			renderVerificationPanel(r, w),
		)
	}
	w := width
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderCardPanel(r, w),
		renderBankPanel(r, w),
		renderVerificationPanel(r, w),
	)
}
