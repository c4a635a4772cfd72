package users

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
	"github.com/jhoicas/distribution-console/pkg/validator"
)

const mutationChangeRole = "change_user_role"

// UserUseCase listado de usuarios y cambio de rol (solo ADMIN).
type UserUseCase struct {
	api  ports.UserAdminAPI
	caps ports.CapabilitySource
	rec  ports.MutationRecorder
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso. rec puede ser nil.
func NewUserUseCase(api ports.UserAdminAPI, caps ports.CapabilitySource, rec ports.MutationRecorder, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{api: api, caps: caps, rec: rec, log: log}
}

// List usuarios con su rol principal.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// ChangeRole asigna roleName al usuario y devuelve la lista actualizada.
// Sin CanManageUsers la acción no existe: no se llama al backend.
func (uc *UserUseCase) ChangeRole(ctx context.Context, userID int64, in dto.ChangeRoleRequest) ([]dto.UserResponse, error) {
	if !uc.caps.Capabilities().CanManageUsers {
		uc.observe(ports.OutcomeSkipped)
		return nil, fmt.Errorf("%w: solo ADMIN puede cambiar roles (rol actual %s)", domain.ErrForbidden, uc.caps.Role())
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	if err := uc.api.UpdateUserRole(ctx, userID, in.RoleName); err != nil {
		uc.observe(ports.OutcomeFailed)
		uc.log.Error().Err(err).Int64("user_id", userID).Str("role", in.RoleName).Msg("cambio de rol rechazado")
		return nil, err
	}
	uc.observe(ports.OutcomeOK)
	uc.log.Info().Int64("user_id", userID).Str("role", in.RoleName).Msg("rol actualizado")
	return uc.List(ctx)
}

func (uc *UserUseCase) observe(outcome string) {
	if uc.rec != nil {
		uc.rec.ObserveMutation(mutationChangeRole, outcome)
	}
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.PrimaryRole(),
	}
}
