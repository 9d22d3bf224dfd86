package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"github.com/festra/event_registration_app/internal/models"
	"github.com/festra/event_registration_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func newMongoUserRepository(db *mongo.Database) portsrepo.UserRepositoryFacade {
	return &MongoUserRepository{coll: db.Collection("users")}
}

// Ensure MongoUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

// objectIDFromHex parses a hex id; an unparseable id can never match a
// document, so it maps to ErrNotFound.
func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, apperrors.ErrNotFound)
	}
	return oid, nil
}

// toModelUser converts a domain user for insertion. The caller assigns the ID.
func toModelUser(d domain.User) models.User {
	accounts := make([]string, len(d.Accounts))
	for i, a := range d.Accounts {
		accounts[i] = string(a)
	}
	events := make([]models.UserEvent, 0, len(d.Events))
	for _, r := range d.Events {
		eventOID, err := primitive.ObjectIDFromHex(r.EventID)
		if err != nil {
			continue
		}
		paymentOID, err := primitive.ObjectIDFromHex(r.PaymentID)
		if err != nil {
			continue
		}
		events = append(events, mapping.ToModelRegistration(eventOID, paymentOID, r.PhysicalVerification))
	}
	return models.User{
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
		College:      d.College,
		PhoneNumber:  d.PhoneNumber,
		Role:         string(d.Role),
		Accounts:     accounts,
		IsVerified:   d.IsVerified,
		IsBlocked:    d.IsBlocked,
		GoogleID:     d.GoogleID,
		Events:       events,

		RefreshTokenHash:   d.RefreshTokenHash,
		RefreshTokenExpiry: d.RefreshTokenExpiry,

		OneTimePasswordHash:    d.OneTimePasswordHash,
		OneTimeExpire:          d.OneTimeExpire,
		ResetPasswordTokenHash: d.ResetPasswordTokenHash,
		ResetPasswordExpire:    d.ResetPasswordExpire,

		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *MongoUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	modelUser := toModelUser(user)
	modelUser.ID = primitive.NewObjectID()
	if modelUser.Events == nil {
		modelUser.Events = []models.UserEvent{}
	}

	if _, err := r.coll.InsertOne(ctx, modelUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email %s: %w", user.Email, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var modelUser models.User
	err := r.coll.FindOne(ctx, filter).Decode(&modelUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	oid, err := objectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"googleId": googleID})
}

func (r *MongoUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"resetPasswordToken": tokenHash})
}

// userListFilter translates a UserFilter into a bson query.
func userListFilter(filter portsrepo.UserFilter) bson.M {
	query := bson.M{}
	if filter.Keyword != "" {
		regex := primitive.Regex{Pattern: filter.Keyword, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"firstName": regex},
			bson.M{"lastName": regex},
			bson.M{"email": regex},
		}
	}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}
	return query
}

func (r *MongoUserRepository) findPage(ctx context.Context, baseFilter bson.M, query bson.M, page, perPage int) (*portsrepo.UserPage, error) {
	total, err := r.coll.CountDocuments(ctx, baseFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	filtered, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count filtered users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	var modelUsers []models.User
	if err := cursor.All(ctx, &modelUsers); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return &portsrepo.UserPage{
		Users:         mapping.ToDomainUserSlice(modelUsers),
		TotalCount:    total,
		FilteredCount: filtered,
	}, nil
}

func (r *MongoUserRepository) FindUsers(ctx context.Context, filter portsrepo.UserFilter) (*portsrepo.UserPage, error) {
	return r.findPage(ctx, bson.M{}, userListFilter(filter), filter.Page, filter.PerPage)
}

func (r *MongoUserRepository) FindRegistrants(ctx context.Context, eventID string, filter portsrepo.UserFilter) (*portsrepo.UserPage, error) {
	oid, err := objectIDFromHex(eventID)
	if err != nil {
		return nil, err
	}
	base := bson.M{"events.eventId": oid}
	query := userListFilter(filter)
	query["events.eventId"] = oid
	return r.findPage(ctx, base, query, filter.Page, filter.PerPage)
}

func (r *MongoUserRepository) FindRegistration(ctx context.Context, userID string, eventID string) (*domain.Registration, error) {
	userOID, err := objectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	eventOID, err := objectIDFromHex(eventID)
	if err != nil {
		return nil, err
	}

	var modelUser models.User
	opts := options.FindOne().SetProjection(bson.M{"events.$": 1})
	err = r.coll.FindOne(ctx, bson.M{"_id": userOID, "events.eventId": eventOID}, opts).Decode(&modelUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	if len(modelUser.Events) == 0 {
		return nil, apperrors.ErrNotFound
	}
	reg := mapping.ToDomainRegistration(modelUser.Events[0])
	return &reg, nil
}

// registrationRow is the shape produced by unwinding the events array.
type registrationRow struct {
	ID        primitive.ObjectID `bson:"_id"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
	Event     models.UserEvent   `bson:"events"`
}

func (r *MongoUserRepository) FindRegistrationRows(ctx context.Context, page int, perPage int) (*portsrepo.RegistrationRowPage, error) {
	unwind := bson.D{{Key: "$unwind", Value: "$events"}}

	countCursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		unwind,
		bson.D{{Key: "$count", Value: "total"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	var countDocs []struct {
		Total int64 `bson:"total"`
	}
	if err := countCursor.All(ctx, &countDocs); err != nil {
		return nil, fmt.Errorf("failed to decode registration count: %w", err)
	}
	var total int64
	if len(countDocs) > 0 {
		total = countDocs[0].Total
	}

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		unwind,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}, {Key: "events.eventId", Value: 1}}}},
		bson.D{{Key: "$skip", Value: int64((page - 1) * perPage)}},
		bson.D{{Key: "$limit", Value: int64(perPage)}},
		bson.D{{Key: "$project", Value: bson.M{
			"firstName": 1,
			"lastName":  1,
			"email":     1,
			"events":    1,
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate registrations: %w", err)
	}
	var rawRows []registrationRow
	if err := cursor.All(ctx, &rawRows); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}

	rows := make([]portsrepo.RegistrationRow, len(rawRows))
	for i, raw := range rawRows {
		rows[i] = portsrepo.RegistrationRow{
			UserID:       raw.ID.Hex(),
			FirstName:    raw.FirstName,
			LastName:     raw.LastName,
			Email:        raw.Email,
			Registration: mapping.ToDomainRegistration(raw.Event),
		}
	}

	return &portsrepo.RegistrationRowPage{Rows: rows, TotalCount: total}, nil
}

func (r *MongoUserRepository) updateByID(ctx context.Context, userID string, update interface{}) error {
	oid, err := objectIDFromHex(userID)
	if err != nil {
		return err
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, user domain.User) error {
	return r.updateByID(ctx, user.UserID, bson.M{"$set": bson.M{
		"firstName":   user.FirstName,
		"lastName":    user.LastName,
		"college":     user.College,
		"phoneNumber": user.PhoneNumber,
		"avatar":      user.Avatar,
		"updatedAt":   user.UpdatedAt,
	}})
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	return r.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now(),
	}})
}

func (r *MongoUserRepository) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	return r.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"isBlocked": blocked,
		"updatedAt": time.Now(),
	}})
}

func (r *MongoUserRepository) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return r.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"role":      string(role),
		"updatedAt": time.Now(),
	}})
}

func (r *MongoUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, googleID string) error {
	update := bson.M{
		"$addToSet": bson.M{"account": string(provider)},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	if googleID != "" {
		update["$set"] = bson.M{"googleId": googleID, "updatedAt": time.Now()}
	}
	return r.updateByID(ctx, userID, update)
}

func (r *MongoUserRepository) DeleteUser(ctx context.Context, userID string) error {
	oid, err := objectIDFromHex(userID)
	if err != nil {
		return err
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	return r.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"refreshToken":       tokenHash,
		"refreshTokenExpire": expiry,
	}})
}

func (r *MongoUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return r.updateByID(ctx, userID, bson.M{"$unset": bson.M{
		"refreshToken":       "",
		"refreshTokenExpire": "",
	}})
}

func (r *MongoUserRepository) SetOneTimePassword(ctx context.Context, userID string, otpHash string, expire time.Time) error {
	return r.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"oneTimePassword": otpHash,
		"oneTimeExpire":   expire,
	}})
}

func (r *MongoUserRepository) MarkVerified(ctx context.Context, userID string) error {
	return r.updateByID(ctx, userID, bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"oneTimePassword": "", "oneTimeExpire": ""},
	})
}

func (r *MongoUserRepository) SetResetPasswordToken(ctx context.Context, userID string, tokenHash string, expire time.Time) error {
	return r.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": expire,
	}})
}

func (r *MongoUserRepository) ClearResetPasswordToken(ctx context.Context, userID string) error {
	return r.updateByID(ctx, userID, bson.M{"$unset": bson.M{
		"resetPasswordToken":  "",
		"resetPasswordExpire": "",
	}})
}

func (r *MongoUserRepository) AppendRegistration(ctx context.Context, userID string, reg domain.Registration) error {
	userOID, err := objectIDFromHex(userID)
	if err != nil {
		return err
	}
	eventOID, err := objectIDFromHex(reg.EventID)
	if err != nil {
		return err
	}
	paymentOID, err := objectIDFromHex(reg.PaymentID)
	if err != nil {
		return err
	}

	// The eventId guard in the filter makes a concurrent double-append lose.
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userOID, "events.eventId": bson.M{"$ne": eventOID}},
		bson.M{"$push": bson.M{"events": mapping.ToModelRegistration(eventOID, paymentOID, reg.PhysicalVerification)}},
	)
	if err != nil {
		return fmt.Errorf("failed to append registration: %w", err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindUserByID(ctx, userID); err != nil {
			return err
		}
		return fmt.Errorf("registration for event %s: %w", reg.EventID, apperrors.ErrDuplicate)
	}
	return nil
}

func (r *MongoUserRepository) SetPhysicalVerification(ctx context.Context, userID string, eventID string, verifierID string) (bool, error) {
	userOID, err := objectIDFromHex(userID)
	if err != nil {
		return false, err
	}
	eventOID, err := objectIDFromHex(eventID)
	if err != nil {
		return false, err
	}
	verifierOID, err := objectIDFromHex(verifierID)
	if err != nil {
		return false, err
	}

	// Only an unverified sub-record matches; re-verification falls through to
	// the no-op branch below.
	result, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id": userOID,
			"events": bson.M{"$elemMatch": bson.M{
				"eventId":                      eventOID,
				"physicalVerification.status": false,
			}},
		},
		bson.M{"$set": bson.M{
			"events.$.physicalVerification": models.PhysicalVerification{Status: true, VerifierID: &verifierOID},
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to set physical verification: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish "already verified" from "no such registration".
		if _, err := r.FindRegistration(ctx, userID, eventID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *MongoUserRepository) RemoveRegistration(ctx context.Context, userID string, eventID string) error {
	userOID, err := objectIDFromHex(userID)
	if err != nil {
		return err
	}
	eventOID, err := objectIDFromHex(eventID)
	if err != nil {
		return err
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userOID},
		bson.M{"$pull": bson.M{"events": bson.M{"eventId": eventOID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove registration: %w", err)
	}
	if result.MatchedCount == 0 || result.ModifiedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
