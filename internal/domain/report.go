package domain

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// ProcedureGroup agrupa os atendimentos de um mesmo procedimento
type ProcedureGroup struct {
	Procedure string
	Entries   []*Entry
	Total     decimal.Decimal
}

// DailyReport é o fechamento de um dia
type DailyReport struct {
	Day          CalendarDay
	Groups       []ProcedureGroup
	GrandTotal   decimal.Decimal
	CashTotal    decimal.Decimal
	DigitalTotal decimal.Decimal
	Expenses     []*Expense
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

type ProcedureGroupResponse struct {
	Procedure      string          `json:"procedure"`
	Entries        []EntryResponse `json:"entries"`
	ProcedureTotal jsoniter.Number `json:"procedureTotal"`
}

type DailyReportResponse struct {
	Date         string                   `json:"date"`
	Groups       []ProcedureGroupResponse `json:"groups"`
	GrandTotal   jsoniter.Number          `json:"grandTotal"`
	CashTotal    jsoniter.Number          `json:"cashTotal"`
	DigitalTotal jsoniter.Number          `json:"digitalTotal"`
	Expenses     []*Expense               `json:"expenses"`
	ExpenseTotal jsoniter.Number          `json:"expenseTotal"`
	NetTotal     jsoniter.Number          `json:"netTotal"`
}

func NewDailyReportResponse(report *DailyReport) *DailyReportResponse {
	groups := make([]ProcedureGroupResponse, 0, len(report.Groups))
	for _, group := range report.Groups {
		groups = append(groups, ProcedureGroupResponse{
			Procedure:      group.Procedure,
			Entries:        NewEntryResponses(group.Entries),
			ProcedureTotal: FormatMoney(group.Total),
		})
	}

	expenses := report.Expenses
	if expenses == nil {
		expenses = []*Expense{}
	}

	return &DailyReportResponse{
		Date:         report.Day.Key(),
		Groups:       groups,
		GrandTotal:   FormatMoney(report.GrandTotal),
		CashTotal:    FormatMoney(report.CashTotal),
		DigitalTotal: FormatMoney(report.DigitalTotal),
		Expenses:     expenses,
		ExpenseTotal: FormatMoney(report.ExpenseTotal),
		NetTotal:     FormatMoney(report.NetTotal),
	}
}
