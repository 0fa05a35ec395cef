package reporting

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"github.com/vfg2006/clinic-intake-api/pkg/log"
)

type Reporter interface {
	GetDailyReport(ctx context.Context, year, month, day int) (*domain.DailyReport, error)
	ListEntries(ctx context.Context, year, month, day int) ([]*domain.Entry, error)
	ListExpenses(ctx context.Context, year, month, day int) ([]*domain.Expense, error)
}

type Service struct {
	entryRepo   repository.EntryRepository
	expenseRepo repository.ExpenseRepository
}

func NewService(entryRepo repository.EntryRepository, expenseRepo repository.ExpenseRepository) *Service {
	return &Service{
		entryRepo:   entryRepo,
		expenseRepo: expenseRepo,
	}
}

// GetDailyReport agrega atendimentos e despesas do dia. Qualquer falha de
// leitura invalida o relatório inteiro.
func (s *Service) GetDailyReport(ctx context.Context, year, month, day int) (*domain.DailyReport, error) {
	calendarDay, err := validateDay(year, month, day)
	if err != nil {
		return nil, err
	}

	entries, err := s.listEntries(ctx, calendarDay)
	if err != nil {
		return nil, err
	}

	expenses, err := s.listExpenses(ctx, calendarDay)
	if err != nil {
		return nil, err
	}

	report := Aggregate(calendarDay, entries, expenses)

	log.ForContext(ctx).WithFields(log.Fields{
		"date":     calendarDay.Key(),
		"entries":  len(entries),
		"expenses": len(expenses),
		"groups":   len(report.Groups),
	}).Debug("Relatório diário gerado")

	return report, nil
}

func (s *Service) ListEntries(ctx context.Context, year, month, day int) ([]*domain.Entry, error) {
	calendarDay, err := validateDay(year, month, day)
	if err != nil {
		return nil, err
	}

	return s.listEntries(ctx, calendarDay)
}

func (s *Service) ListExpenses(ctx context.Context, year, month, day int) ([]*domain.Expense, error) {
	calendarDay, err := validateDay(year, month, day)
	if err != nil {
		return nil, err
	}

	return s.listExpenses(ctx, calendarDay)
}

func (s *Service) listEntries(ctx context.Context, day domain.CalendarDay) ([]*domain.Entry, error) {
	start, end := day.Window()

	entries, err := s.entryRepo.ListEntriesByWindow(ctx, start, end)
	if err != nil {
		logrus.WithError(err).WithField("date", day.Key()).Error("Erro ao buscar atendimentos")
		return nil, unavailable()
	}

	return entries, nil
}

func (s *Service) listExpenses(ctx context.Context, day domain.CalendarDay) ([]*domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByDate(ctx, day.Key())
	if err != nil {
		logrus.WithError(err).WithField("date", day.Key()).Error("Erro ao buscar despesas")
		return nil, unavailable()
	}

	return expenses, nil
}

func validateDay(year, month, day int) (domain.CalendarDay, error) {
	calendarDay, err := domain.NewCalendarDay(year, month, day)
	if err != nil {
		return domain.CalendarDay{}, NewReportError(ErrInvalidDay, apiErrors.ErrInvalidFormat, "Data inválida")
	}
	return calendarDay, nil
}

func unavailable() *ReportError {
	return NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro interno do servidor")
}
