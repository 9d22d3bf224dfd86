package services_test

import (
	"context"
	"time"

	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	args := m.Called(ctx, tokenHash)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, filter portsrepo.UserFilter) (*portsrepo.UserPage, error) {
	args := m.Called(ctx, filter)
	var page *portsrepo.UserPage
	if args.Get(0) != nil {
		page = args.Get(0).(*portsrepo.UserPage)
	}
	return page, args.Error(1)
}

func (m *MockUserRepository) FindRegistrants(ctx context.Context, eventID string, filter portsrepo.UserFilter) (*portsrepo.UserPage, error) {
	args := m.Called(ctx, eventID, filter)
	var page *portsrepo.UserPage
	if args.Get(0) != nil {
		page = args.Get(0).(*portsrepo.UserPage)
	}
	return page, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	var saved *domain.User
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.User)
	}
	return saved, args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	args := m.Called(ctx, userID, blocked)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, googleID string) error {
	args := m.Called(ctx, userID, provider, googleID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetOneTimePassword(ctx context.Context, userID string, otpHash string, expire time.Time) error {
	args := m.Called(ctx, userID, otpHash, expire)
	return args.Error(0)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetPasswordToken(ctx context.Context, userID string, tokenHash string, expire time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expire)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetPasswordToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindRegistration(ctx context.Context, userID string, eventID string) (*domain.Registration, error) {
	args := m.Called(ctx, userID, eventID)
	var reg *domain.Registration
	if args.Get(0) != nil {
		reg = args.Get(0).(*domain.Registration)
	}
	return reg, args.Error(1)
}

func (m *MockUserRepository) FindRegistrationRows(ctx context.Context, page int, perPage int) (*portsrepo.RegistrationRowPage, error) {
	args := m.Called(ctx, page, perPage)
	var rows *portsrepo.RegistrationRowPage
	if args.Get(0) != nil {
		rows = args.Get(0).(*portsrepo.RegistrationRowPage)
	}
	return rows, args.Error(1)
}

func (m *MockUserRepository) AppendRegistration(ctx context.Context, userID string, reg domain.Registration) error {
	args := m.Called(ctx, userID, reg)
	return args.Error(0)
}

func (m *MockUserRepository) SetPhysicalVerification(ctx context.Context, userID string, eventID string, verifierID string) (bool, error) {
	args := m.Called(ctx, userID, eventID, verifierID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) RemoveRegistration(ctx context.Context, userID string, eventID string) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

// --- Mock EventRepository ---

type MockEventRepository struct {
	mock.Mock
}

var _ portsrepo.EventRepositoryFacade = (*MockEventRepository)(nil)

func (m *MockEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	var event *domain.Event
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.Event)
	}
	return event, args.Error(1)
}

func (m *MockEventRepository) FindEvents(ctx context.Context, filter portsrepo.EventFilter) (*portsrepo.EventPage, error) {
	args := m.Called(ctx, filter)
	var page *portsrepo.EventPage
	if args.Get(0) != nil {
		page = args.Get(0).(*portsrepo.EventPage)
	}
	return page, args.Error(1)
}

func (m *MockEventRepository) SaveEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	args := m.Called(ctx, event)
	var saved *domain.Event
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Event)
	}
	return saved, args.Error(1)
}

func (m *MockEventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventRepository) ToggleAllVisibility(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) ReserveSlot(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventRepository) ReleaseSlot(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	var saved *domain.Payment
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Payment)
	}
	return saved, args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}
