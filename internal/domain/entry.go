package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "Pix"
	PaymentCash       PaymentMethod = "Dinheiro"
	PaymentCreditCard PaymentMethod = "Cartão de Crédito"
)

var PaymentMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCreditCard}

func (p PaymentMethod) Valid() bool {
	for _, method := range PaymentMethods {
		if p == method {
			return true
		}
	}
	return false
}

// Entry é um atendimento registrado pela recepção
type Entry struct {
	ID               string
	PatientName      string
	Date             time.Time
	Procedure        string
	PaymentMethods   []PaymentMethod
	CashAmount       Amount
	PixAmount        Amount
	CreditCardAmount Amount
	Notes            *string
	SubmittedBy      string
	SubmittedByName  string
	CreatedAt        time.Time
}

func (e *Entry) Cash() decimal.Decimal {
	return e.CashAmount.Value()
}

// Digital soma Pix e cartão de crédito
func (e *Entry) Digital() decimal.Decimal {
	return e.PixAmount.Value().Add(e.CreditCardAmount.Value())
}

func (e *Entry) Total() decimal.Decimal {
	return e.Cash().Add(e.Digital())
}

func (e *Entry) HasPaymentMethod(method PaymentMethod) bool {
	for _, m := range e.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// EntryInput é o corpo de POST /submit-form. Não existe campo de autor:
// quem submete vem sempre do token.
type EntryInput struct {
	PatientName      string          `json:"pacienteNome"`
	Date             string          `json:"date"`
	Procedure        string          `json:"procedimento"`
	Payments         []PaymentMethod `json:"payments"`
	Notes            string          `json:"observacao"`
	CashAmount       Amount          `json:"moneyAmount"`
	CreditCardAmount Amount          `json:"creditCardAmount"`
	PixAmount        Amount          `json:"pixAmount"`
}

type EntryResponse struct {
	ID               string          `json:"id"`
	PatientName      string          `json:"pacienteNome"`
	Date             string          `json:"date"`
	Procedure        string          `json:"procedimento"`
	Payments         []PaymentMethod `json:"payments"`
	Notes            *string         `json:"observacao,omitempty"`
	CashAmount       Amount          `json:"moneyAmount"`
	PixAmount        Amount          `json:"pixAmount"`
	CreditCardAmount Amount          `json:"creditCardAmount"`
	Total            jsoniter.Number `json:"total"`
	AddedBy          string          `json:"addedBy"`
}

func NewEntryResponse(e *Entry) EntryResponse {
	payments := e.PaymentMethods
	if payments == nil {
		payments = []PaymentMethod{}
	}

	return EntryResponse{
		ID:               e.ID,
		PatientName:      e.PatientName,
		Date:             FormatLocal(e.Date),
		Procedure:        e.Procedure,
		Payments:         payments,
		Notes:            e.Notes,
		CashAmount:       e.CashAmount,
		PixAmount:        e.PixAmount,
		CreditCardAmount: e.CreditCardAmount,
		Total:            FormatMoney(e.Total()),
		AddedBy:          e.SubmittedByName,
	}
}

func NewEntryResponses(entries []*Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, NewEntryResponse(e))
	}
	return responses
}
