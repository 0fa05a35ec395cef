package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate aceita YYYY-MM-DD (interpretado em loc) ou um instante RFC 3339,
// devolvendo sempre o horário convertido para loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	if date, err := time.ParseInLocation("2006-01-02", dateStr, loc); err == nil {
		return date, nil
	}

	instant, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("formato de data inválido: %q", dateStr)
	}

	return instant.In(loc), nil
}
