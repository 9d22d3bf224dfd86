package mongodb

import (
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewRepositoryProvider builds all MongoDB-backed repositories over the given
// database handle.
func NewRepositoryProvider(db *mongo.Database) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:    newMongoUserRepository(db),
		EventRepo:   newMongoEventRepository(db),
		PaymentRepo: newMongoPaymentRepository(db),
	}
}
