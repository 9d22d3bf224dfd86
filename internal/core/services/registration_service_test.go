package services_test

import (
	"context"
	"testing"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/core/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RegistrationServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockEventRepo   *MockEventRepository
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.RegistrationSvcFacade
}

func (suite *RegistrationServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockEventRepo = new(MockEventRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewRegistrationService(suite.mockUserRepo, suite.mockEventRepo, suite.mockPaymentRepo, testConfig())
}

func (suite *RegistrationServiceTestSuite) visibleEvent(eventID string) *domain.Event {
	return &domain.Event{
		EventID:       eventID,
		Title:         "Hack Night",
		Participation: domain.ParticipationSolo,
		Category:      domain.CategoryTechnical,
		Limit:         100,
		Registered:    10,
		IsVisible:     true,
	}
}

func (suite *RegistrationServiceTestSuite) TestRegisterForEvent_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()
	paymentID := uuid.NewString()
	req := dto.RegisterForEventRequest{Amount: "250.00", Reference: "upi-ref-1"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(suite.visibleEvent(eventID), nil).Once()
	suite.mockEventRepo.On("ReserveSlot", ctx, eventID).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.UserID == userID &&
			p.EventID == eventID &&
			p.Amount.Equal(decimal.RequireFromString("250.00")) &&
			p.Status == domain.PaymentCompleted &&
			p.Reference == "upi-ref-1"
	})).Return(&domain.Payment{PaymentID: paymentID, UserID: userID, EventID: eventID}, nil).Once()
	suite.mockUserRepo.On("AppendRegistration", ctx, userID, mock.MatchedBy(func(r domain.Registration) bool {
		return r.EventID == eventID && r.PaymentID == paymentID && !r.PhysicalVerification.Status && r.PhysicalVerification.VerifierID == ""
	})).Return(nil).Once()

	reg, err := suite.service.RegisterForEvent(ctx, userID, eventID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(reg)
	suite.Equal(eventID, reg.EventID)
	suite.Equal(paymentID, reg.PaymentID)
	suite.False(reg.PhysicalVerification.Status)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestRegisterForEvent_AlreadyRegistered() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()
	user := &domain.User{
		UserID: userID,
		Events: []domain.Registration{{EventID: eventID, PaymentID: uuid.NewString()}},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	reg, err := suite.service.RegisterForEvent(ctx, userID, eventID, dto.RegisterForEventRequest{Amount: "10"})

	suite.Require().Error(err)
	suite.Nil(reg)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockEventRepo.AssertNotCalled(suite.T(), "ReserveSlot", mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestRegisterForEvent_EventFull() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(suite.visibleEvent(eventID), nil).Once()
	suite.mockEventRepo.On("ReserveSlot", ctx, eventID).Return(apperrors.ErrCapacityExceeded).Once()

	reg, err := suite.service.RegisterForEvent(ctx, userID, eventID, dto.RegisterForEventRequest{Amount: "10"})

	suite.Require().Error(err)
	suite.Nil(reg)
	suite.ErrorIs(err, apperrors.ErrCapacityExceeded)
	// Nothing was written once the reserve lost.
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "AppendRegistration", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestRegisterForEvent_HiddenEvent() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()
	event := suite.visibleEvent(eventID)
	event.IsVisible = false

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(event, nil).Once()

	reg, err := suite.service.RegisterForEvent(ctx, userID, eventID, dto.RegisterForEventRequest{Amount: "10"})

	suite.Require().Error(err)
	suite.Nil(reg)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RegistrationServiceTestSuite) TestRegisterForEvent_InvalidAmount() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Twice()
	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(suite.visibleEvent(eventID), nil).Twice()

	for _, amount := range []string{"not-a-number", "-5"} {
		reg, err := suite.service.RegisterForEvent(ctx, userID, eventID, dto.RegisterForEventRequest{Amount: amount})
		suite.Require().Error(err)
		suite.Nil(reg)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockEventRepo.AssertNotCalled(suite.T(), "ReserveSlot", mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestRegisterForEvent_AppendFailureReleasesSlot() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(suite.visibleEvent(eventID), nil).Once()
	suite.mockEventRepo.On("ReserveSlot", ctx, eventID).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).
		Return(&domain.Payment{PaymentID: uuid.NewString()}, nil).Once()
	suite.mockUserRepo.On("AppendRegistration", ctx, userID, mock.AnythingOfType("domain.Registration")).
		Return(assert.AnError).Once()
	suite.mockEventRepo.On("ReleaseSlot", ctx, eventID).Return(nil).Once()

	reg, err := suite.service.RegisterForEvent(ctx, userID, eventID, dto.RegisterForEventRequest{Amount: "10"})

	suite.Require().Error(err)
	suite.Nil(reg)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestMarkPhysicalVerification_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()
	verifierID := uuid.NewString()
	verified := &domain.Registration{
		EventID:              eventID,
		PaymentID:            uuid.NewString(),
		PhysicalVerification: domain.PhysicalVerification{Status: true, VerifierID: verifierID},
	}

	suite.mockUserRepo.On("SetPhysicalVerification", ctx, userID, eventID, verifierID).Return(true, nil).Once()
	suite.mockUserRepo.On("FindRegistration", ctx, userID, eventID).Return(verified, nil).Once()

	reg, err := suite.service.MarkPhysicalVerification(ctx, userID, eventID, verifierID)

	suite.Require().NoError(err)
	suite.True(reg.PhysicalVerification.Status)
	suite.Equal(verifierID, reg.PhysicalVerification.VerifierID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestMarkPhysicalVerification_RepeatKeepsFirstVerifier() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()
	firstVerifier := uuid.NewString()
	secondVerifier := uuid.NewString()
	verified := &domain.Registration{
		EventID:              eventID,
		PaymentID:            uuid.NewString(),
		PhysicalVerification: domain.PhysicalVerification{Status: true, VerifierID: firstVerifier},
	}

	// Already verified: the write is a no-op and the stored state comes back.
	suite.mockUserRepo.On("SetPhysicalVerification", ctx, userID, eventID, secondVerifier).Return(false, nil).Once()
	suite.mockUserRepo.On("FindRegistration", ctx, userID, eventID).Return(verified, nil).Once()

	reg, err := suite.service.MarkPhysicalVerification(ctx, userID, eventID, secondVerifier)

	suite.Require().NoError(err)
	suite.True(reg.PhysicalVerification.Status)
	suite.Equal(firstVerifier, reg.PhysicalVerification.VerifierID)
}

func (suite *RegistrationServiceTestSuite) TestMarkPhysicalVerification_MissingVerifier() {
	ctx := context.Background()

	reg, err := suite.service.MarkPhysicalVerification(ctx, uuid.NewString(), uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(reg)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetPhysicalVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestDeleteRegistration_ReleasesSlot() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()

	suite.mockUserRepo.On("RemoveRegistration", ctx, userID, eventID).Return(nil).Once()
	suite.mockEventRepo.On("ReleaseSlot", ctx, eventID).Return(nil).Once()

	err := suite.service.DeleteRegistration(ctx, userID, eventID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestDeleteRegistration_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	eventID := uuid.NewString()

	suite.mockUserRepo.On("RemoveRegistration", ctx, userID, eventID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteRegistration(ctx, userID, eventID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEventRepo.AssertNotCalled(suite.T(), "ReleaseSlot", mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestListRegistrations_FlattensRows() {
	ctx := context.Background()
	verifierID := uuid.NewString()
	rows := &portsrepo.RegistrationRowPage{
		Rows: []portsrepo.RegistrationRow{
			{
				UserID:    uuid.NewString(),
				FirstName: "Asha",
				LastName:  "Pillai",
				Email:     "asha@example.com",
				Registration: domain.Registration{
					EventID:              uuid.NewString(),
					PaymentID:            uuid.NewString(),
					PhysicalVerification: domain.PhysicalVerification{Status: true, VerifierID: verifierID},
				},
			},
		},
		TotalCount: 23,
	}

	suite.mockUserRepo.On("FindRegistrationRows", ctx, 2, 10).Return(rows, nil).Once()

	resp, err := suite.service.ListRegistrations(ctx, 2, 0)

	suite.Require().NoError(err)
	suite.Len(resp.Registrations, 1)
	suite.Equal("Asha", resp.Registrations[0].FirstName)
	suite.Equal(verifierID, resp.Registrations[0].PhysicalVerification.VerifierID)
	suite.Equal(int64(23), resp.Count)
	suite.Equal(10, resp.ResultPerPage)
	suite.Equal(2, resp.CurrentPage)
}

func (suite *RegistrationServiceTestSuite) TestGetPayment() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID: paymentID,
		UserID:    uuid.NewString(),
		EventID:   uuid.NewString(),
		Amount:    decimal.RequireFromString("99.50"),
		Status:    domain.PaymentCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	got, err := suite.service.GetPayment(ctx, paymentID)

	suite.Require().NoError(err)
	suite.Equal(paymentID, got.PaymentID)
	suite.True(got.Amount.Equal(decimal.RequireFromString("99.50")))
}

func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}
