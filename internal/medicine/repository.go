package medicine

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MedicineRepository handles DB operations for medicine records.
type MedicineRepository struct {
	collection *mongo.Collection
}

// NewMedicineRepository creates a new repository for medicines.
func NewMedicineRepository(db *mongo.Database) *MedicineRepository {
	return &MedicineRepository{collection: db.Collection("medicines")}
}

// CreateMedicine inserts a new medicine record.
func (r *MedicineRepository) CreateMedicine(ctx context.Context, m *Medicine) error {
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

// FindByUser fetches all active medicines belonging to one user.
func (r *MedicineRepository) FindByUser(ctx context.Context, userID string) ([]*Medicine, error) {
	filter := bson.M{"user_id": userID, "active": true}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var medicines []*Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

// FindByID fetches a single medicine by ObjectID. Returns nil when not found.
func (r *MedicineRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Medicine, error) {
	var m Medicine
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// UpdateMedicine replaces the stored record with the given one.
func (r *MedicineRepository) UpdateMedicine(ctx context.Context, m *Medicine) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	return err
}

// FindEligible fetches every record that is active with email notifications
// enabled, across all users. Used by the daily reminder pipeline.
func (r *MedicineRepository) FindEligible(ctx context.Context) ([]*Medicine, error) {
	filter := bson.M{"active": true, "notification_preferences.email.enabled": true}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var medicines []*Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}
