package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"github.com/festra/event_registration_app/internal/models"
	"github.com/festra/event_registration_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoPaymentRepository struct {
	coll *mongo.Collection
}

func newMongoPaymentRepository(db *mongo.Database) portsrepo.PaymentRepositoryFacade {
	return &MongoPaymentRepository{coll: db.Collection("payments")}
}

// Ensure MongoPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*MongoPaymentRepository)(nil)

func (r *MongoPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	userOID, err := objectIDFromHex(payment.UserID)
	if err != nil {
		return nil, err
	}
	eventOID, err := objectIDFromHex(payment.EventID)
	if err != nil {
		return nil, err
	}

	modelPayment := models.Payment{
		ID:        primitive.NewObjectID(),
		UserID:    userOID,
		EventID:   eventOID,
		Amount:    payment.Amount.String(),
		Status:    string(payment.Status),
		Reference: payment.Reference,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, modelPayment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	domainPayment := mapping.ToDomainPayment(modelPayment)
	return &domainPayment, nil
}

func (r *MongoPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	oid, err := objectIDFromHex(paymentID)
	if err != nil {
		return nil, err
	}

	var modelPayment models.Payment
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&modelPayment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	domainPayment := mapping.ToDomainPayment(modelPayment)
	return &domainPayment, nil
}
