package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/clinic-intake-api/infrastructure/database/postgres"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/utils"
)

const (
	entriesTable = "entries"
)

var entryColumns = []string{
	"e.id",
	"e.patient_name",
	"e.date",
	"e.procedure",
	"e.payment_methods",
	"e.cash_amount",
	"e.pix_amount",
	"e.credit_card_amount",
	"e.notes",
	"e.submitted_by",
	"COALESCE(u.username, '')",
	"e.created_at",
}

type EntryRepository interface {
	CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	ListEntriesByWindow(ctx context.Context, start, end time.Time) ([]*domain.Entry, error)
	DeleteEntry(ctx context.Context, id string) (bool, error)
}

type entryRepository struct {
	conn postgres.Queryer
}

func NewEntryRepository(conn postgres.Queryer) EntryRepository {
	return &entryRepository{
		conn: conn,
	}
}

func (r *entryRepository) CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do atendimento")
	}

	methods := make([]string, 0, len(entry.PaymentMethods))
	for _, m := range entry.PaymentMethods {
		methods = append(methods, string(m))
	}

	query, args, err := squirrel.
		Insert(entriesTable).
		Columns(
			"id",
			"patient_name",
			"date",
			"procedure",
			"payment_methods",
			"cash_amount",
			"pix_amount",
			"credit_card_amount",
			"notes",
			"submitted_by",
		).
		Values(
			id,
			entry.PatientName,
			entry.Date.UTC(),
			entry.Procedure,
			pq.Array(methods),
			string(entry.CashAmount),
			string(entry.PixAmount),
			string(entry.CreditCardAmount),
			entry.Notes,
			entry.SubmittedBy,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inserir atendimento")
	}

	entry.ID = id
	return entry, nil
}

func buildListEntriesQuery(start, end time.Time) (string, []interface{}, error) {
	return squirrel.
		Select(entryColumns...).
		From(entriesTable + " e").
		LeftJoin(usersTable + " u ON u.id = e.submitted_by").
		Where(squirrel.GtOrEq{"e.date": start.UTC()}).
		Where(squirrel.Lt{"e.date": end.UTC()}).
		OrderBy("e.date ASC", "e.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// ListEntriesByWindow busca os atendimentos com start <= date < end
func (r *entryRepository) ListEntriesByWindow(ctx context.Context, start, end time.Time) ([]*domain.Entry, error) {
	query, args, err := buildListEntriesQuery(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear atendimento")
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return entries, nil
}

func scanEntry(rows *sql.Rows) (*domain.Entry, error) {
	var (
		entry                 domain.Entry
		methods               pq.StringArray
		cash, pix, creditCard sql.NullString
		notes                 sql.NullString
	)

	err := rows.Scan(
		&entry.ID,
		&entry.PatientName,
		&entry.Date,
		&entry.Procedure,
		&methods,
		&cash,
		&pix,
		&creditCard,
		&notes,
		&entry.SubmittedBy,
		&entry.SubmittedByName,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.PaymentMethods = make([]domain.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		entry.PaymentMethods = append(entry.PaymentMethods, domain.PaymentMethod(m))
	}
	entry.CashAmount = domain.Amount(cash.String)
	entry.PixAmount = domain.Amount(pix.String)
	entry.CreditCardAmount = domain.Amount(creditCard.String)
	if notes.Valid {
		entry.Notes = &notes.String
	}

	return &entry, nil
}

// DeleteEntry retorna false quando nenhum atendimento tinha o id
func (r *entryRepository) DeleteEntry(ctx context.Context, id string) (bool, error) {
	query, args, err := squirrel.
		Delete(entriesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "erro ao construir a query")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "erro ao remover atendimento %s", id)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "erro ao obter linhas afetadas")
	}

	return rowsAffected > 0, nil
}
