package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/internal/domain/provider"
	repo "github.com/peatti/auth-server/internal/domain/repository"
	"github.com/peatti/auth-server/internal/domain/valueobject"
	"github.com/peatti/auth-server/internal/infrastructure/metrics"
	"github.com/peatti/auth-server/pkg/helpers"
)

type SignUpInput struct {
	Name     string
	Email    string
	WhatsApp string
	Password string
}

type SignUpOutput struct {
	Account *entity.Account
}

// SignUp registers a new account for one role.
type SignUp struct {
	Role    entity.Role
	Repo    repo.AccountRepository
	Crypto  provider.PasswordEncrypter
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
	// NewID defaults to valueobject.GenerateID.
	NewID entity.IDGenerator
}

func NewSignUp(role entity.Role, r repo.AccountRepository, crypto provider.PasswordEncrypter, logger logrus.FieldLogger, m *metrics.Metrics) *SignUp {
	return &SignUp{Role: role, Repo: r, Crypto: crypto, Logger: logger, Metrics: m, NewID: valueobject.GenerateID}
}

// Name identifies the use case in logs.
func (s *SignUp) Name() string {
	if s.Role == entity.RoleRestaurantOwner {
		return "SignUpRestaurantOwner"
	}
	return "SignUpCustomer"
}

// Execute validates the input and creates the account. The order of checks is fixed:
// name, password, WhatsApp format, WhatsApp uniqueness, email format, email uniqueness,
// hashing, creation, save. The first failure is returned.
func (s *SignUp) Execute(ctx context.Context, in SignUpInput) (out *SignUpOutput, err error) {
	started := time.Now()
	defer func() {
		helpers.LogTime(s.Logger, helpers.LayerUseCase, s.Name(), "Execute", started, err == nil)
		s.Metrics.ObserveSignUp(s.Role.String(), started, err)
		s.logFailure(err)
	}()
	return s.execute(ctx, in)
}

func (s *SignUp) execute(ctx context.Context, in SignUpInput) (*SignUpOutput, error) {
	model := s.Role.Model()

	name, err := entity.ValidateName(s.Role, in.Name, nil)
	if err != nil {
		return nil, err
	}
	password, err := valueobject.NewDecryptedPassword(in.Password, model, nil)
	if err != nil {
		return nil, err
	}

	whatsApp, err := valueobject.NewWhatsApp(in.WhatsApp, model, nil)
	if err != nil {
		return nil, err
	}
	found, err := s.Repo.FindByWhatsApp(ctx, whatsApp)
	if err != nil {
		return nil, s.repositoryError("FindByWhatsApp", err)
	}
	if found != nil {
		return nil, apperror.WhatsAppAlreadyInUse(model.String(), whatsApp.Value())
	}

	email, err := valueobject.NewEmail(in.Email, model, nil)
	if err != nil {
		return nil, err
	}
	found, err = s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.repositoryError("FindByEmail", err)
	}
	if found != nil {
		return nil, apperror.EmailAlreadyInUse(model.String(), email.Value())
	}

	encrypted, err := s.Crypto.EncryptPassword(ctx, password)
	if err != nil {
		if _, ok := apperror.As(err); !ok {
			err = apperror.Provider("crypto", "encrypt password", "bcrypt", err)
		}
		return nil, err
	}

	newID := s.NewID
	if newID == nil {
		newID = valueobject.GenerateID
	}
	account, err := entity.NewAccountWith(newID, s.Role, name, email, whatsApp, encrypted)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, account); err != nil {
		return nil, s.repositoryError("Save", err)
	}
	return &SignUpOutput{Account: account}, nil
}

// repositoryError keeps typed errors and wraps anything else as a repository failure.
func (s *SignUp) repositoryError(method string, err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Repository(s.Role.String()+"s", method, "pgx", err)
}

// logFailure stays at debug level: the controller reports server failures.
func (s *SignUp) logFailure(err error) {
	if err == nil {
		return
	}
	helpers.LogDebug(s.Logger, "sign-up failed", err, logrus.Fields{
		"use_case": s.Name(),
		"kind":     string(apperror.KindOf(err)),
	})
}
