package serviceRepo

import (
	"context"
	"errors"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrServiceNotFound is returned when no service record matches the id.
var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository exposes the service records the calendar engine reads.
// Full marketplace CRUD lives elsewhere; the engine only needs lookups.
type ServiceRepository interface {
	GetAll(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, serviceID string) (*models.Service, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a ServiceRepository over the services
// collection.
func NewMongoServiceRepo() ServiceRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoServiceRepo{
		coll: db.Collection("services"),
	}
}
