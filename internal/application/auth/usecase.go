package auth

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

// SessionStore lo implementa *session.Session.
type SessionStore interface {
	SetToken(token string) error
	Clear() error
	Role() entity.Role
}

// AuthUseCase login, registro y logout contra el backend; la credencial vive en la sesión.
type AuthUseCase struct {
	api     ports.AuthAPI
	session SessionStore
	log     zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(api ports.AuthAPI, session SessionStore, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{api: api, session: session, log: log}
}

// Login obtiene la credencial y la carga en la sesión. Devuelve el rol derivado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (entity.Role, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return entity.RoleUnknown, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	out, err := uc.api.Login(ctx, in)
	if err != nil {
		uc.log.Warn().Err(err).Str("username", in.Username).Msg("login fallido")
		return entity.RoleUnknown, err
	}
	if err := uc.session.SetToken(out.Token); err != nil {
		return entity.RoleUnknown, fmt.Errorf("guardar credencial: %w", err)
	}
	role := uc.session.Role()
	uc.log.Info().Str("username", in.Username).Str("role", string(role)).Msg("sesión iniciada")
	return role, nil
}

// Register crea una cuenta. No inicia sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) error {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	if err := uc.api.Register(ctx, in); err != nil {
		uc.log.Warn().Err(err).Str("username", in.Username).Msg("registro rechazado")
		return err
	}
	uc.log.Info().Str("username", in.Username).Msg("usuario registrado")
	return nil
}

// Logout descarta la credencial local.
func (uc *AuthUseCase) Logout() error {
	if err := uc.session.Clear(); err != nil {
		return fmt.Errorf("borrar credencial: %w", err)
	}
	uc.log.Info().Msg("sesión cerrada")
	return nil
}
