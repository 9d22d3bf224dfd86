package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/core/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/festra/event_registration_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret-for-tests",
		RefreshTokenExpiry: 24 * time.Hour,
		JWTIssuer:          "era-backend-test",
		ResultPerPage:      10,
		FrontendBaseURL:    "http://localhost:3000",
	}
}

// testMailer logs instead of sending (no API key), and discards the logs.
func testMailer() *utils.Mailer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return utils.NewMailer("", "Test", "test@example.com", logger)
}

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, testMailer(), testConfig())
}

// --- Register Tests ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		FirstName:   "Asha",
		LastName:    "Pillai",
		Email:       "asha@example.com",
		Password:    "password123",
		College:     "NIT Trichy",
		PhoneNumber: "9876543210",
	}
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email &&
			u.Role == domain.RoleUser &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash) &&
			!u.IsVerified
	})).Return(&domain.User{UserID: userID, Email: req.Email, FirstName: req.FirstName, Role: domain.RoleUser}, nil).Once()
	suite.mockUserRepo.On("SetOneTimePassword", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	created, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(userID, created.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "taken@example.com", Password: "password123"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).
		Return(&domain.User{UserID: uuid.NewString(), Email: req.Email}, nil).Once()

	created, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_OTPStoreFailureDoesNotFailSignup() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "new@example.com", Password: "password123"}
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(&domain.User{UserID: userID, Email: req.Email}, nil).Once()
	suite.mockUserRepo.On("SetOneTimePassword", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(assert.AnError).Once()

	created, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "correct-horse"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "a@b.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, _ := utils.HashPassword("right-password")
	user := &domain.User{UserID: uuid.NewString(), Email: "a@b.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailIsUnauthorized() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	// Not-found does not leak whether the account exists.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Blocked() {
	ctx := context.Background()
	password := "password123"
	hash, _ := utils.HashPassword(password)
	user := &domain.User{UserID: uuid.NewString(), Email: "a@b.com", PasswordHash: hash, IsBlocked: true}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_FederatedOnlyAccountRejected() {
	ctx := context.Background()
	// Google-created account: no password hash stored at all.
	user := &domain.User{UserID: uuid.NewString(), Email: "g@b.com", PasswordHash: ""}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, "")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- VerifyEmail Tests ---

func (suite *UserServiceTestSuite) TestVerifyEmail_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	otp := "123456"
	expire := time.Now().Add(10 * time.Minute)
	user := &domain.User{
		UserID:              userID,
		OneTimePasswordHash: utils.HashSecret(otp),
		OneTimeExpire:       &expire,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("MarkVerified", ctx, userID).Return(nil).Once()

	got, err := suite.service.VerifyEmail(ctx, userID, otp)

	suite.Require().NoError(err)
	suite.True(got.IsVerified)
	suite.Empty(got.OneTimePasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestVerifyEmail_WrongOTP() {
	ctx := context.Background()
	userID := uuid.NewString()
	expire := time.Now().Add(10 * time.Minute)
	user := &domain.User{
		UserID:              userID,
		OneTimePasswordHash: utils.HashSecret("123456"),
		OneTimeExpire:       &expire,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.VerifyEmail(ctx, userID, "654321")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkVerified", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestVerifyEmail_InsideWindow() {
	ctx := context.Background()
	userID := uuid.NewString()
	otp := "222333"
	// One second before the window closes.
	expire := time.Now().Add(time.Second)
	user := &domain.User{UserID: userID, OneTimePasswordHash: utils.HashSecret(otp), OneTimeExpire: &expire}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("MarkVerified", ctx, userID).Return(nil).Once()

	_, err := suite.service.VerifyEmail(ctx, userID, otp)
	suite.Require().NoError(err)
}

func (suite *UserServiceTestSuite) TestVerifyEmail_ExpiredWindow() {
	ctx := context.Background()
	userID := uuid.NewString()
	otp := "222333"
	// One second after the window closed.
	expire := time.Now().Add(-time.Second)
	user := &domain.User{UserID: userID, OneTimePasswordHash: utils.HashSecret(otp), OneTimeExpire: &expire}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.VerifyEmail(ctx, userID, otp)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrExpiredSecret)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkVerified", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestVerifyEmail_AlreadyVerifiedIsNoOp() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, IsVerified: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.VerifyEmail(ctx, userID, "000000")

	suite.Require().NoError(err)
	suite.True(got.IsVerified)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkVerified", mock.Anything, mock.Anything)
}

// --- ResendOneTimePassword Tests ---

func (suite *UserServiceTestSuite) TestResendOneTimePassword_OverwritesSecret() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Email: "a@b.com", OneTimePasswordHash: utils.HashSecret("111111")}

	var storedHash string
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("SetOneTimePassword", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil).Once()

	err := suite.service.ResendOneTimePassword(ctx, userID)

	suite.Require().NoError(err)
	// The regenerated secret replaces the old one.
	suite.NotEmpty(storedHash)
	suite.NotEqual(user.OneTimePasswordHash, storedHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestResendOneTimePassword_AlreadyVerified() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID, IsVerified: true}, nil).Once()

	err := suite.service.ResendOneTimePassword(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ForgotPassword / ResetPassword Tests ---

func (suite *UserServiceTestSuite) TestForgotPassword_StoresHashNotPlaintext() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "a@b.com", FirstName: "A"}

	var storedHash string
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()
	suite.mockUserRepo.On("SetResetPasswordToken", ctx, user.UserID, mock.AnythingOfType("string"), mock.MatchedBy(func(expire time.Time) bool {
		remaining := time.Until(expire)
		return remaining > 14*time.Minute && remaining <= 15*time.Minute
	})).Run(func(args mock.Arguments) {
		storedHash = args.String(2)
	}).Return(nil).Once()

	err := suite.service.ForgotPassword(ctx, user.Email)

	suite.Require().NoError(err)
	// A 20-byte token hex encodes to 40 chars; its SHA256 hash is 64 chars.
	suite.Len(storedHash, 64)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestForgotPassword_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ForgotPassword(ctx, "ghost@example.com")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestResetPassword_Success() {
	ctx := context.Background()
	token := "plain-reset-token"
	expire := time.Now().Add(5 * time.Minute)
	user := &domain.User{
		UserID:                 uuid.NewString(),
		ResetPasswordTokenHash: utils.HashSecret(token),
		ResetPasswordExpire:    &expire,
	}

	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, utils.HashSecret(token)).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdatePassword", ctx, user.UserID, mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("new-password", hash)
	})).Return(nil).Once()
	suite.mockUserRepo.On("ClearResetPasswordToken", ctx, user.UserID).Return(nil).Once()
	// Reset ends the active session.
	suite.mockUserRepo.On("ClearRefreshToken", ctx, user.UserID).Return(nil).Once()

	got, err := suite.service.ResetPassword(ctx, token, "new-password")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestResetPassword_ExpiredToken() {
	ctx := context.Background()
	token := "stale-token"
	expire := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:                 uuid.NewString(),
		ResetPasswordTokenHash: utils.HashSecret(token),
		ResetPasswordExpire:    &expire,
	}

	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, utils.HashSecret(token)).Return(user, nil).Once()

	got, err := suite.service.ResetPassword(ctx, token, "new-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrExpiredSecret)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestResetPassword_UnknownToken() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.ResetPassword(ctx, "never-issued", "new-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Listing Tests ---

func (suite *UserServiceTestSuite) TestListUsers_DefaultsPagination() {
	ctx := context.Background()
	expected := &portsrepo.UserPage{Users: []domain.User{{UserID: uuid.NewString()}}, TotalCount: 1, FilteredCount: 1}

	suite.mockUserRepo.On("FindUsers", ctx, portsrepo.UserFilter{Page: 1, PerPage: 10}).Return(expected, nil).Once()

	page, err := suite.service.ListUsers(ctx, portsrepo.UserFilter{})

	suite.Require().NoError(err)
	suite.Equal(expected, page)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_InvalidRole() {
	ctx := context.Background()

	page, err := suite.service.ListUsers(ctx, portsrepo.UserFilter{Role: "SUPERUSER"})

	suite.Require().Error(err)
	suite.Nil(page)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything)
}

// --- Admin Mutation Tests ---

func (suite *UserServiceTestSuite) TestToggleBlock_Flips() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, IsBlocked: false}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("SetBlocked", ctx, userID, true).Return(nil).Once()

	got, err := suite.service.ToggleBlock(ctx, userID)

	suite.Require().NoError(err)
	suite.True(got.IsBlocked)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateRole_InvalidRole() {
	ctx := context.Background()

	got, err := suite.service.UpdateRole(ctx, uuid.NewString(), "SUPERUSER")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestUpdateRole_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleUser}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateRole", ctx, userID, domain.RoleModerator).Return(nil).Once()

	got, err := suite.service.UpdateRole(ctx, userID, domain.RoleModerator)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleModerator, got.Role)
}

// --- UpdateProfile Tests ---

func (suite *UserServiceTestSuite) TestUpdateProfile_MergesOnlyProvidedFields() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, FirstName: "Old", College: "Old College", PhoneNumber: "0000000000"}
	newName := "New"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.FirstName == newName && u.College == "Old College" && u.PhoneNumber == "0000000000"
	})).Return(nil).Once()

	got, err := suite.service.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{FirstName: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, got.FirstName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
