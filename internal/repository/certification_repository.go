package repository

import (
	"context"

	"hexaboard-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CertificationRepository struct {
	Col *mongo.Collection
}

func NewCertificationRepository(db *mongo.Database) *CertificationRepository {
	return &CertificationRepository{Col: db.Collection("certifications")}
}

// Create appends a certification; records are never updated or deleted.
func (r *CertificationRepository) Create(ctx context.Context, cert *models.Certification) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	_, err := r.Col.InsertOne(ctx, cert)
	return err
}

func (r *CertificationRepository) FindByUser(ctx context.Context, userID string) ([]models.Certification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var certs []models.Certification
	if err := cur.All(ctx, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}
