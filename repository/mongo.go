package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
)

// ProductStore keeps the catalog in the "products" collection.
type ProductStore struct {
	Collection *mongo.Collection
}

// NewProductStore uses the products collection of db.
func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{Collection: db.Collection("products")}
}

func (s *ProductStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.FeaturedOnly {
		query["featured"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (s *ProductStore) Get(ctx context.Context, documentID string) (models.Product, error) {
	var product models.Product
	err := s.Collection.FindOne(ctx, bson.M{"document_id": documentID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return product, ErrNotFound
	}
	return product, errors.Wrapf(err, "find product %s", documentID)
}

// Create assigns a document id and timestamps before inserting.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	if p.DocumentID == "" {
		p.DocumentID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.Collection.InsertOne(ctx, p)
	return errors.Wrapf(err, "insert product %s", p.Name)
}

func (s *ProductStore) Update(ctx context.Context, documentID string, p models.Product) error {
	p.DocumentID = documentID
	p.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":            p.Name,
		"slug":            p.Slug,
		"description":     p.Description,
		"price":           p.Price,
		"category":        p.Category,
		"rarity":          p.Rarity,
		"rarity_color":    p.RarityColor,
		"breathing_style": p.BreathingStyle,
		"weapon_type":     p.WeaponType,
		"in_stock":        p.InStock,
		"featured":        p.Featured,
		"stock_count":     p.StockCount,
		"image_url":       p.ImageURL,
		"image_alt":       p.ImageAlt,
		"sharpness":       p.Sharpness,
		"durability":      p.Durability,
		"speed":           p.Speed,
		"power":           p.Power,
		"defense":         p.Defense,
		"weight":          p.Weight,
		"material":        p.Material,
		"manufacturer":    p.Manufacturer,
		"ai_feature":      p.AIFeature,
		"updated_at":      p.UpdatedAt,
	}}
	result, err := s.Collection.UpdateOne(ctx, bson.M{"document_id": documentID}, update)
	if err != nil {
		return errors.Wrapf(err, "update product %s", documentID)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, documentID string) error {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return errors.Wrapf(err, "delete product %s", documentID)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.Collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "delete products")
	}
	return result.DeletedCount, nil
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	n, err := s.Collection.CountDocuments(ctx, bson.M{})
	return n, errors.Wrap(err, "count products")
}

// OrderStore keeps placed orders in the "orders" collection.
type OrderStore struct {
	Collection *mongo.Collection
}

// NewOrderStore uses the orders collection of db.
func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{Collection: db.Collection("orders")}
}

func (s *OrderStore) Create(ctx context.Context, o *models.Order) error {
	_, err := s.Collection.InsertOne(ctx, o)
	return errors.Wrapf(err, "insert order %s", o.OrderNumber)
}

func (s *OrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.Collection.Find(ctx, bson.M{"customer.email": email}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}

// UserStore keeps accounts in the "users" collection.
type UserStore struct {
	Collection *mongo.Collection
}

// NewUserStore uses the users collection of db.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{Collection: db.Collection("users")}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	return user, errors.Wrapf(err, "find user %s", email)
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()
	_, err := s.Collection.InsertOne(ctx, u)
	return errors.Wrapf(err, "insert user %s", u.Email)
}

func (s *UserStore) CountByRole(ctx context.Context, role string) (int64, error) {
	n, err := s.Collection.CountDocuments(ctx, bson.M{"role": role})
	return n, errors.Wrap(err, "count users")
}
