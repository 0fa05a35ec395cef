package submitting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"github.com/vfg2006/clinic-intake-api/pkg/utils"
)

type Submitter interface {
	SubmitEntry(ctx context.Context, actor *domain.Claims, input domain.EntryInput) (string, error)
	SubmitExpense(ctx context.Context, input domain.ExpenseInput) (string, error)
}

type Service struct {
	entryRepo   repository.EntryRepository
	expenseRepo repository.ExpenseRepository
	now         func() time.Time
}

func NewService(entryRepo repository.EntryRepository, expenseRepo repository.ExpenseRepository) *Service {
	return &Service{
		entryRepo:   entryRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// SubmitEntry valida o formulário e grava o atendimento. O autor vem
// sempre das claims do token.
func (s *Service) SubmitEntry(ctx context.Context, actor *domain.Claims, input domain.EntryInput) (string, error) {
	if actor == nil || actor.UserID == "" {
		return "", NewSubmitError(ErrUnauthenticated, apiErrors.ErrInvalidToken, "", "Usuário não autenticado")
	}

	entry, err := s.buildEntry(input)
	if err != nil {
		return "", err
	}
	entry.SubmittedBy = actor.UserID

	created, err := s.entryRepo.CreateEntry(ctx, entry)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gravar atendimento")
		return "", NewSubmitError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", "Erro interno do servidor")
	}

	return created.ID, nil
}

func (s *Service) buildEntry(input domain.EntryInput) (*domain.Entry, error) {
	patientName := strings.TrimSpace(input.PatientName)
	if patientName == "" {
		return nil, missing("pacienteNome", "Nome do paciente é obrigatório")
	}

	procedure := strings.TrimSpace(input.Procedure)
	if procedure == "" {
		return nil, missing("procedimento", "Procedimento é obrigatório")
	}

	if strings.TrimSpace(input.Date) == "" {
		return nil, missing("date", "Data é obrigatória")
	}
	submitted, err := utils.ParseDate(input.Date, domain.LocalZone)
	if err != nil {
		return nil, invalid("date", "Data inválida, use o formato YYYY-MM-DD")
	}

	methods, err := normalizePayments(input.Payments)
	if err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		PatientName:      patientName,
		Date:             domain.CalendarDayOf(submitted).At(s.now()),
		Procedure:        procedure,
		PaymentMethods:   methods,
		CashAmount:       domain.NewAmount(decimal.Zero),
		PixAmount:        domain.NewAmount(decimal.Zero),
		CreditCardAmount: domain.NewAmount(decimal.Zero),
	}

	channels := []struct {
		method domain.PaymentMethod
		field  string
		raw    domain.Amount
		target *domain.Amount
	}{
		{domain.PaymentCash, "moneyAmount", input.CashAmount, &entry.CashAmount},
		{domain.PaymentPix, "pixAmount", input.PixAmount, &entry.PixAmount},
		{domain.PaymentCreditCard, "creditCardAmount", input.CreditCardAmount, &entry.CreditCardAmount},
	}

	for _, channel := range channels {
		if !entry.HasPaymentMethod(channel.method) {
			continue
		}

		amount, err := parseNonNegative(channel.raw, channel.field, string(channel.method))
		if err != nil {
			return nil, err
		}
		*channel.target = amount
	}

	if notes := strings.TrimSpace(input.Notes); notes != "" {
		entry.Notes = &notes
	}

	return entry, nil
}

// normalizePayments remove duplicados mantendo a ordem de envio
func normalizePayments(payments []domain.PaymentMethod) ([]domain.PaymentMethod, error) {
	if len(payments) == 0 {
		return nil, missing("payments", "Selecione ao menos uma forma de pagamento")
	}

	seen := make(map[domain.PaymentMethod]bool, len(payments))
	methods := make([]domain.PaymentMethod, 0, len(payments))
	for _, method := range payments {
		if !method.Valid() {
			return nil, invalid("payments", fmt.Sprintf("Forma de pagamento desconhecida: %s", method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		methods = append(methods, method)
	}

	return methods, nil
}

// SubmitExpense grava uma despesa avulsa do dia informado
func (s *Service) SubmitExpense(ctx context.Context, input domain.ExpenseInput) (string, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return "", missing("description", "Descrição é obrigatória")
	}

	amount, err := parseNonNegative(input.Amount, "amount", "a despesa")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input.Date) == "" {
		return "", missing("date", "Data é obrigatória")
	}
	day, err := domain.ParseCalendarDay(strings.TrimSpace(input.Date))
	if err != nil {
		return "", invalid("date", "Data inválida, use o formato YYYY-MM-DD")
	}

	created, err := s.expenseRepo.CreateExpense(ctx, &domain.Expense{
		Description: description,
		Amount:      amount,
		Date:        day.Key(),
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao gravar despesa")
		return "", NewSubmitError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", "Erro interno do servidor")
	}

	return created.ID, nil
}

func parseNonNegative(raw domain.Amount, field, label string) (domain.Amount, error) {
	if raw.IsEmpty() {
		return "", missing(field, fmt.Sprintf("Informe o valor para %s", label))
	}

	value, err := domain.ParseAmount(string(raw))
	if err != nil {
		return "", invalid(field, fmt.Sprintf("Valor inválido para %s", label))
	}
	if value.IsNegative() {
		return "", invalid(field, fmt.Sprintf("Valor negativo para %s", label))
	}
	if !value.Equal(value.Round(2)) {
		return "", invalid(field, fmt.Sprintf("Use no máximo duas casas decimais para %s", label))
	}

	return domain.NewAmount(value), nil
}

func missing(field, details string) *SubmitError {
	return NewSubmitError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, field, details)
}

func invalid(field, details string) *SubmitError {
	return NewSubmitError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, field, details)
}
