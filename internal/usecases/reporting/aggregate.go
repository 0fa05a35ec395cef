package reporting

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Aggregate monta o fechamento do dia a partir dos registros já filtrados
// pela janela do dia. Valores ausentes ou malformados contam como zero.
func Aggregate(day domain.CalendarDay, entries []*domain.Entry, expenses []*domain.Expense) *domain.DailyReport {
	report := &domain.DailyReport{
		Day:          day,
		Groups:       groupByProcedure(entries),
		GrandTotal:   decimal.Zero,
		CashTotal:    decimal.Zero,
		DigitalTotal: decimal.Zero,
		Expenses:     expenses,
		ExpenseTotal: decimal.Zero,
	}

	for _, group := range report.Groups {
		report.GrandTotal = report.GrandTotal.Add(group.Total)
		for _, entry := range group.Entries {
			report.CashTotal = report.CashTotal.Add(entry.Cash())
			report.DigitalTotal = report.DigitalTotal.Add(entry.Digital())
		}
	}

	for _, expense := range expenses {
		report.ExpenseTotal = report.ExpenseTotal.Add(expense.Amount.Value())
	}

	report.NetTotal = report.GrandTotal.Sub(report.ExpenseTotal)
	return report
}

// groupByProcedure particiona os atendimentos pelo nome exato do procedimento
func groupByProcedure(entries []*domain.Entry) []domain.ProcedureGroup {
	index := make(map[string]int)
	groups := make([]domain.ProcedureGroup, 0)

	for _, entry := range entries {
		i, ok := index[entry.Procedure]
		if !ok {
			i = len(groups)
			index[entry.Procedure] = i
			groups = append(groups, domain.ProcedureGroup{
				Procedure: entry.Procedure,
				Total:     decimal.Zero,
			})
		}

		groups[i].Entries = append(groups[i].Entries, entry)
		groups[i].Total = groups[i].Total.Add(entry.Total())
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Entries, func(a, b *domain.Entry) int {
			return strings.Compare(a.PatientName, b.PatientName)
		})
	}

	// Collator não é seguro para uso concorrente, um por chamada
	collator := collate.New(language.BrazilianPortuguese)
	slices.SortStableFunc(groups, func(a, b domain.ProcedureGroup) int {
		if c := collator.CompareString(a.Procedure, b.Procedure); c != 0 {
			return c
		}
		return strings.Compare(a.Procedure, b.Procedure)
	})

	return groups
}
