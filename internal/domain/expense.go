package domain

import "time"

// Expense é uma despesa avulsa. Date é o dia civil local (YYYY-MM-DD), sem horário.
type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      Amount    `json:"amount"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExpenseInput struct {
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}
