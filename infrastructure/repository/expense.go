package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/clinic-intake-api/infrastructure/database/postgres"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/utils"
)

const (
	expensesTable = "expenses"
)

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	ListExpensesByDate(ctx context.Context, day string) ([]*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
}

type expenseRepository struct {
	conn postgres.Queryer
}

func NewExpenseRepository(conn postgres.Queryer) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id da despesa")
	}

	query, args, err := squirrel.
		Insert(expensesTable).
		Columns("id", "description", "amount", "date").
		Values(id, expense.Description, string(expense.Amount), expense.Date).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&expense.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inserir despesa")
	}

	expense.ID = id
	return expense, nil
}

func buildListExpensesQuery(day string) (string, []interface{}, error) {
	return squirrel.
		Select("id", "description", "COALESCE(amount, '')", "date", "created_at").
		From(expensesTable).
		Where(squirrel.Eq{"date": day}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// ListExpensesByDate compara a data como texto YYYY-MM-DD
func (r *expenseRepository) ListExpensesByDate(ctx context.Context, day string) ([]*domain.Expense, error) {
	query, args, err := buildListExpensesQuery(day)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		var (
			expense domain.Expense
			amount  string
		)
		if err := rows.Scan(&expense.ID, &expense.Description, &amount, &expense.Date, &expense.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear despesa")
		}
		expense.Amount = domain.Amount(amount)
		expenses = append(expenses, &expense)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return expenses, nil
}

func (r *expenseRepository) DeleteExpense(ctx context.Context, id string) (bool, error) {
	query, args, err := squirrel.
		Delete(expensesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "erro ao construir a query")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "erro ao remover despesa %s", id)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "erro ao obter linhas afetadas")
	}

	return rowsAffected > 0, nil
}
