package administering

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
)

// deleteRoles são os perfis que podem remover atendimentos e despesas
var deleteRoles = []domain.Role{domain.RoleAdmin}

type Administrator interface {
	DeleteEntry(ctx context.Context, actor *domain.Claims, id string) error
	DeleteExpense(ctx context.Context, actor *domain.Claims, id string) error
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

func (s *Service) DeleteEntry(ctx context.Context, actor *domain.Claims, id string) error {
	return s.delete(ctx, actor, id, "atendimento", s.entryRepo.DeleteEntry)
}

func (s *Service) DeleteExpense(ctx context.Context, actor *domain.Claims, id string) error {
	return s.delete(ctx, actor, id, "despesa", s.expenseRepo.DeleteExpense)
}

func (s *Service) delete(
	ctx context.Context,
	actor *domain.Claims,
	id string,
	kind string,
	remove func(context.Context, string) (bool, error),
) error {
	if err := authorize(actor); err != nil {
		return err
	}

	if id == "" {
		return NewAdminError(ErrNotFound, apiErrors.ErrNotFound, id, "Registro não encontrado")
	}

	deleted, err := remove(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Errorf("Erro ao remover %s", kind)
		return NewAdminError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro interno do servidor")
	}

	if !deleted {
		return NewAdminError(ErrNotFound, apiErrors.ErrNotFound, id, "Registro não encontrado")
	}

	logrus.WithFields(logrus.Fields{
		"id":      id,
		"user_id": actor.UserID,
	}).Infof("Registro de %s removido", kind)

	return nil
}

func authorize(actor *domain.Claims) error {
	err := domain.Authorize(actor, deleteRoles...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUnauthenticated):
		return NewAdminError(ErrUnauthenticated, apiErrors.ErrInvalidToken, "", "Usuário não autenticado")
	default:
		return NewAdminError(ErrForbidden, apiErrors.ErrInsufficientPrivilege, "", "Privilégios insuficientes")
	}
}
