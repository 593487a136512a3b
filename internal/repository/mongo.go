package repository

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kivutrips/internal/errors"
	"kivutrips/internal/model"
)

const (
	usersCollection      = "users"
	activitiesCollection = "activities"
)

// EnsureMongoIndexes creates the indexes the document store relies on.
// The unique email index is what turns concurrent duplicate registrations
// into a driver duplicate-key error rather than a race.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(activitiesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "featured", Value: 1}},
	})
	return err
}

// userDoc is the Mongo representation of a User.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Phone     string             `bson:"phone,omitempty"`
	AvatarURL string             `bson:"avatar_url,omitempty"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *userDoc) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Phone:        d.Phone,
		AvatarURL:    d.AvatarURL,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// activityDoc is the Mongo representation of an Activity.
type activityDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Type        string             `bson:"type"`
	Image       string             `bson:"image"`
	Description string             `bson:"description"`
	Location    string             `bson:"location"`
	FullAddress string             `bson:"fullAddress,omitempty"`
	Latitude    string             `bson:"latitude,omitempty"`
	Longitude   string             `bson:"longitude,omitempty"`
	Contact     string             `bson:"contact,omitempty"`
	Phone       string             `bson:"phone,omitempty"`
	Featured    bool               `bson:"featured"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *activityDoc) toModel() *model.Activity {
	return &model.Activity{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Type:        d.Type,
		Image:       d.Image,
		Description: d.Description,
		Location:    d.Location,
		FullAddress: d.FullAddress,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Contact:     d.Contact,
		Phone:       d.Phone,
		Featured:    d.Featured,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// parseObjectID validates a document identifier, distinguishing a
// malformed id from an absent record.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.ErrInvalidID
	}
	return oid, nil
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository builds a Mongo-backed credential store.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(usersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Password:  user.PasswordHash,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.ErrDuplicateUser
		}
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.AvatarURL != nil {
		set["avatar_url"] = *update.AvatarURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

type mongoActivityRepository struct {
	coll *mongo.Collection
}

// NewMongoActivityRepository builds a Mongo-backed listing store.
func NewMongoActivityRepository(db *mongo.Database) ActivityRepository {
	return &mongoActivityRepository{coll: db.Collection(activitiesCollection)}
}

func (r *mongoActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	now := time.Now()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now
	}
	activity.UpdatedAt = now

	doc := activityDoc{
		ID:          primitive.NewObjectID(),
		Name:        activity.Name,
		Type:        activity.Type,
		Image:       activity.Image,
		Description: activity.Description,
		Location:    activity.Location,
		FullAddress: activity.FullAddress,
		Latitude:    activity.Latitude,
		Longitude:   activity.Longitude,
		Contact:     activity.Contact,
		Phone:       activity.Phone,
		Featured:    activity.Featured,
		CreatedAt:   activity.CreatedAt,
		UpdatedAt:   activity.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	activity.ID = doc.ID.Hex()
	return nil
}

func (r *mongoActivityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc activityDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrActivityNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *mongoActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeActivities(ctx, cursor)
}

func (r *mongoActivityRepository) ListFeatured(ctx context.Context, limit int) ([]model.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeActivities(ctx, cursor)
}

func decodeActivities(ctx context.Context, cursor *mongo.Cursor) ([]model.Activity, error) {
	activities := []model.Activity{}
	for cursor.Next(ctx) {
		var doc activityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		activities = append(activities, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *mongoActivityRepository) Update(ctx context.Context, id string, update ActivityUpdate) (*model.Activity, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	setString := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	setString("name", update.Name)
	setString("type", update.Type)
	setString("image", update.Image)
	setString("description", update.Description)
	setString("location", update.Location)
	setString("fullAddress", update.FullAddress)
	setString("latitude", update.Latitude)
	setString("longitude", update.Longitude)
	setString("contact", update.Contact)
	setString("phone", update.Phone)
	if update.Featured != nil {
		set["featured"] = *update.Featured
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc activityDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrActivityNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *mongoActivityRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.ErrActivityNotFound
	}
	return nil
}

// ToggleFeatured flips the featured flag with an aggregation-pipeline
// update so the read-modify-write happens inside a single document write.
func (r *mongoActivityRepository) ToggleFeatured(ctx context.Context, id string) (*model.Activity, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "featured", Value: bson.D{{Key: "$not", Value: "$featured"}}},
			{Key: "updated_at", Value: time.Now()},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc activityDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&doc)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrActivityNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}
