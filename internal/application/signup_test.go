package application

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/internal/domain/valueobject"
	"github.com/peatti/auth-server/internal/infrastructure/metrics"
)

type fakeRepo struct {
	calls         []string
	byWhatsApp    *entity.AccountSummary
	byEmail       *entity.AccountSummary
	findWhatsErr  error
	findEmailErr  error
	saveErr       error
	saved         *entity.Account
	lookedUpEmail string
}

func (f *fakeRepo) FindByWhatsApp(_ context.Context, w valueobject.WhatsApp) (*entity.AccountSummary, error) {
	f.calls = append(f.calls, "FindByWhatsApp")
	return f.byWhatsApp, f.findWhatsErr
}

func (f *fakeRepo) FindByEmail(_ context.Context, e valueobject.Email) (*entity.AccountSummary, error) {
	f.calls = append(f.calls, "FindByEmail")
	f.lookedUpEmail = e.Value()
	return f.byEmail, f.findEmailErr
}

func (f *fakeRepo) Save(_ context.Context, a *entity.Account) error {
	f.calls = append(f.calls, "Save")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = a
	return nil
}

type fakeCrypto struct {
	calls int
	err   error
}

func (f *fakeCrypto) EncryptPassword(_ context.Context, p valueobject.Password) (valueobject.Password, error) {
	f.calls++
	if f.err != nil {
		return valueobject.Password{}, f.err
	}
	return valueobject.NewEncryptedPassword("hashed:" + p.Value()), nil
}

func validInput() SignUpInput {
	return SignUpInput{
		Name:     "John Doe",
		Email:    "John@Example.com",
		WhatsApp: "+1 (234) 567-8900",
		Password: "Secret123",
	}
}

func newTestSignUp(role entity.Role, r *fakeRepo, c *fakeCrypto) (*SignUp, *metrics.Metrics) {
	logger, _ := test.NewNullLogger()
	m := metrics.New("test", prometheus.NewRegistry())
	return NewSignUp(role, r, c, logger, m), m
}

func TestSignUp_Success(t *testing.T) {
	r, c := &fakeRepo{}, &fakeCrypto{}
	uc, m := newTestSignUp(entity.RoleCustomer, r, c)

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	acc := out.Account
	assert.Equal(t, "john@example.com", acc.Email().Value())
	assert.Equal(t, "+12345678900", acc.WhatsApp().Value())
	assert.Equal(t, "John Doe", acc.Name())
	assert.Equal(t, "hashed:Secret123", acc.Password().Value())
	assert.Len(t, acc.PendingVerifications(), 2)
	assert.True(t, acc.CreatedAt().Equal(acc.UpdatedAt()))
	assert.Nil(t, acc.DeletedAt())

	assert.Equal(t, []string{"FindByWhatsApp", "FindByEmail", "Save"}, r.calls)
	assert.Same(t, acc, r.saved)
	assert.Equal(t, "john@example.com", r.lookedUpEmail)
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SignUps.WithLabelValues("customer", "success")))
}

func TestSignUp_RestaurantOwnerUsesOwnModel(t *testing.T) {
	r := &fakeRepo{byEmail: &entity.AccountSummary{ID: "x"}}
	uc, _ := newTestSignUp(entity.RoleRestaurantOwner, r, &fakeCrypto{})

	_, err := uc.Execute(context.Background(), validInput())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindEmailAlreadyInUse, appErr.Kind)
	assert.Equal(t, "Email already in use for restaurant owner john@example.com", appErr.Message)
	assert.Equal(t, "SignUpRestaurantOwner", uc.Name())
}

func TestSignUp_ErrorPrecedence(t *testing.T) {
	duplicate := &entity.AccountSummary{ID: "existing"}
	tests := []struct {
		name      string
		mutate    func(*SignUpInput)
		repo      *fakeRepo
		crypto    *fakeCrypto
		newID     entity.IDGenerator
		wantKind  apperror.Kind
		wantCalls []string
		wantHash  int
	}{
		{
			name:      "invalid name wins over duplicate whatsapp",
			mutate:    func(in *SignUpInput) { in.Name = "Jo" },
			repo:      &fakeRepo{byWhatsApp: duplicate},
			wantKind:  apperror.KindInvalidName,
			wantCalls: nil,
		},
		{
			name: "invalid password wins over invalid whatsapp",
			mutate: func(in *SignUpInput) {
				in.Password = "has space"
				in.WhatsApp = "123"
			},
			repo:     &fakeRepo{},
			wantKind: apperror.KindInvalidPassword,
		},
		{
			name:     "invalid whatsapp before any lookup",
			mutate:   func(in *SignUpInput) { in.WhatsApp = "0123456789" },
			repo:     &fakeRepo{},
			wantKind: apperror.KindInvalidWhatsApp,
		},
		{
			name:      "duplicate whatsapp stops before email check",
			mutate:    func(in *SignUpInput) { in.Email = "not-an-email" },
			repo:      &fakeRepo{byWhatsApp: duplicate, byEmail: duplicate},
			wantKind:  apperror.KindWhatsAppAlreadyInUse,
			wantCalls: []string{"FindByWhatsApp"},
		},
		{
			name:      "invalid email after whatsapp lookup",
			mutate:    func(in *SignUpInput) { in.Email = "not-an-email" },
			repo:      &fakeRepo{},
			wantKind:  apperror.KindInvalidEmail,
			wantCalls: []string{"FindByWhatsApp"},
		},
		{
			name:      "duplicate email skips hashing",
			repo:      &fakeRepo{byEmail: duplicate},
			wantKind:  apperror.KindEmailAlreadyInUse,
			wantCalls: []string{"FindByWhatsApp", "FindByEmail"},
		},
		{
			name:      "whatsapp lookup failure",
			repo:      &fakeRepo{findWhatsErr: apperror.Repository("customers", "FindByWhatsApp", "pgx", errors.New("conn reset"))},
			wantKind:  apperror.KindRepository,
			wantCalls: []string{"FindByWhatsApp"},
		},
		{
			name:      "untyped email lookup failure is wrapped",
			repo:      &fakeRepo{findEmailErr: errors.New("timeout")},
			wantKind:  apperror.KindRepository,
			wantCalls: []string{"FindByWhatsApp", "FindByEmail"},
		},
		{
			name:      "hash failure",
			repo:      &fakeRepo{},
			crypto:    &fakeCrypto{err: errors.New("bcrypt exploded")},
			wantKind:  apperror.KindProvider,
			wantCalls: []string{"FindByWhatsApp", "FindByEmail"},
			wantHash:  1,
		},
		{
			name: "id generation failure after hashing, before save",
			repo: &fakeRepo{},
			newID: func(m valueobject.Model) (valueobject.ID, error) {
				return valueobject.ID{}, apperror.IDGeneration(m.String(), errors.New("entropy exhausted"))
			},
			wantKind:  apperror.KindIDGeneration,
			wantCalls: []string{"FindByWhatsApp", "FindByEmail"},
			wantHash:  1,
		},
		{
			name:      "save conflict surfaces as already in use",
			repo:      &fakeRepo{saveErr: apperror.EmailAlreadyInUse("customer", "john@example.com")},
			wantKind:  apperror.KindEmailAlreadyInUse,
			wantCalls: []string{"FindByWhatsApp", "FindByEmail", "Save"},
			wantHash:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			c := tt.crypto
			if c == nil {
				c = &fakeCrypto{}
			}
			uc, m := newTestSignUp(entity.RoleCustomer, tt.repo, c)
			if tt.newID != nil {
				uc.NewID = tt.newID
			}

			out, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
			assert.Equal(t, tt.wantCalls, tt.repo.calls)
			assert.Equal(t, tt.wantHash, c.calls)
			assert.Nil(t, tt.repo.saved)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.SignUps.WithLabelValues("customer", string(tt.wantKind))))
		})
	}
}

func TestSignUp_LogsTiming(t *testing.T) {
	logger, hook := test.NewNullLogger()
	uc := NewSignUp(entity.RoleCustomer, &fakeRepo{}, &fakeCrypto{}, logger, nil)

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	var timing bool
	for _, e := range hook.AllEntries() {
		if e.Data["layer"] == "use_case" && e.Data["name"] == "SignUpCustomer" {
			timing = true
			assert.Equal(t, true, e.Data["is_success"])
		}
	}
	assert.True(t, timing)
}

func TestSignUp_UntypedRepositoryErrorNamesDriver(t *testing.T) {
	uc, _ := newTestSignUp(entity.RoleCustomer, &fakeRepo{saveErr: errors.New("broken pipe")}, &fakeCrypto{})

	_, err := uc.Execute(context.Background(), validInput())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Error in customers repository in Save method. Error in external lib name: pgx.", appErr.Message)
	assert.ErrorContains(t, err, "broken pipe")
}

func TestSignUp_FailureIsNotLoggedAsError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	repo := &fakeRepo{findEmailErr: apperror.Repository("customers", "FindByEmail", "pgx", errors.New("conn reset"))}
	uc := NewSignUp(entity.RoleCustomer, repo, &fakeCrypto{}, logger, nil)

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)

	var debug int
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, e.Level, e.Message)
		if e.Level == logrus.DebugLevel && e.Message == "sign-up failed" {
			debug++
			assert.Equal(t, "RepositoryError", e.Data["kind"])
		}
	}
	assert.Equal(t, 1, debug)
}
