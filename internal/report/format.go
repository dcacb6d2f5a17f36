package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ptBR renders numbers with the Brazilian comma decimal separator and dot
// thousands grouping.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders a monetary amount as a pt-BR currency string,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatCurrency(v float64) string {
	return ptBR.Sprintf("R$ %.2f", v)
}

// storedTimeLayouts are the timestamp shapes the store is known to emit.
var storedTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// FormatDate renders a stored timestamp as dd/mm/yyyy. Unparseable values
// pass through unchanged rather than breaking the whole report.
func FormatDate(stored string) string {
	for _, layout := range storedTimeLayouts {
		if t, err := time.Parse(layout, stored); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return stored
}

// Today renders the current date as dd/mm/yyyy for report headers.
func Today() string {
	return time.Now().Format("02/01/2006")
}
