package administering

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository/mocks"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var (
	admin        = &domain.Claims{UserID: "usr_admin000", Role: domain.RoleAdmin}
	receptionist = &domain.Claims{UserID: "usr_recep000", Role: domain.RoleReceptionist}
)

func TestService_DeleteEntry(t *testing.T) {
	tests := []struct {
		name     string
		actor    *domain.Claims
		setup    func(repo *mocks.MockEntryRepository)
		wantErr  error
		wantCode string
	}{
		{
			name:  "admin remove atendimento existente",
			actor: admin,
			setup: func(repo *mocks.MockEntryRepository) {
				repo.EXPECT().DeleteEntry(gomock.Any(), "ent1").Return(true, nil)
			},
		},
		{
			name:  "id inexistente",
			actor: admin,
			setup: func(repo *mocks.MockEntryRepository) {
				repo.EXPECT().DeleteEntry(gomock.Any(), "ent1").Return(false, nil)
			},
			wantErr:  ErrNotFound,
			wantCode: apiErrors.ErrNotFound,
		},
		{
			name:     "recepcionista não pode remover",
			actor:    receptionist,
			setup:    func(repo *mocks.MockEntryRepository) {},
			wantErr:  ErrForbidden,
			wantCode: apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:     "sem claims",
			actor:    nil,
			setup:    func(repo *mocks.MockEntryRepository) {},
			wantErr:  ErrUnauthenticated,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name:  "falha no banco",
			actor: admin,
			setup: func(repo *mocks.MockEntryRepository) {
				repo.EXPECT().DeleteEntry(gomock.Any(), "ent1").Return(false, errors.New("broken pipe"))
			},
			wantErr:  ErrDatabaseOperation,
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			entryRepo := mocks.NewMockEntryRepository(ctrl)
			tt.setup(entryRepo)

			service := NewService(entryRepo, mocks.NewMockExpenseRepository(ctrl))
			err := service.DeleteEntry(context.Background(), tt.actor, "ent1")

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			var adminErr *AdminError
			require.True(t, errors.As(err, &adminErr))
			assert.Equal(t, tt.wantCode, adminErr.Code)
		})
	}
}

func TestService_DeleteExpense_IsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expenseRepo := mocks.NewMockExpenseRepository(ctrl)
	service := NewService(mocks.NewMockEntryRepository(ctrl), expenseRepo)

	gomock.InOrder(
		expenseRepo.EXPECT().DeleteExpense(gomock.Any(), "exp1").Return(true, nil),
		expenseRepo.EXPECT().DeleteExpense(gomock.Any(), "exp1").Return(false, nil),
	)

	assert.NoError(t, service.DeleteExpense(context.Background(), admin, "exp1"))
	assert.ErrorIs(t, service.DeleteExpense(context.Background(), admin, "exp1"), ErrNotFound)
}
