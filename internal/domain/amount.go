package domain

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidAmount = errors.New("valor inválido")

// Amount guarda o valor monetário como texto, do jeito que chegou ou foi gravado.
// Registros antigos podem conter valores malformados, por isso o parse é tardio.
type Amount string

// UnmarshalJSON aceita número, string ou null
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}

	// Número JSON usa ponto decimal: 1.500 é um e meio, não mil e quinhentos
	if jsonFraction.Match(trimmed) {
		*a = Amount(bytes.Replace(trimmed, []byte("."), []byte(","), 1))
		return nil
	}

	*a = Amount(trimmed)
	return nil
}

const maxAmountLength = 24

// maxAmount limita a magnitude aceita: valores a partir de 1e12 são rejeitados
var maxAmount = decimal.New(1, 12)

var (
	// 150 | 150.5 | -3
	plainAmount = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

	// 1.500 | 2.000.000: sem vírgula, ponto seguido de três dígitos é milhar
	groupedAmount = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

	// 150,50 | 1.234,56
	commaAmount = regexp.MustCompile(`^-?(\d+|\d{1,3}(\.\d{3})+),\d+$`)

	// número JSON com parte fracionária, guardado com vírgula decimal
	jsonFraction = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// ParseAmount interpreta valores como "150", "150.5", "150,50", "1.500", "1.234,56" ou "R$ 20,00".
// Notação científica e formatos ambíguos são rejeitados.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" || len(s) > maxAmountLength {
		return decimal.Zero, ErrInvalidAmount
	}

	switch {
	case commaAmount.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case groupedAmount.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	case plainAmount.MatchString(s):
	default:
		return decimal.Zero, ErrInvalidAmount
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if value.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}

	return value, nil
}

// Value nunca falha: ausente, malformado ou negativo vale zero
func (a Amount) Value() decimal.Decimal {
	value, err := ParseAmount(string(a))
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func (a Amount) IsEmpty() bool {
	return strings.TrimSpace(string(a)) == ""
}

// NewAmount normaliza um decimal para o formato gravado (duas casas)
func NewAmount(value decimal.Decimal) Amount {
	return Amount(value.StringFixed(2))
}

// FormatMoney apresenta um decimal com duas casas como número JSON
func FormatMoney(value decimal.Decimal) jsoniter.Number {
	return jsoniter.Number(value.StringFixed(2))
}
