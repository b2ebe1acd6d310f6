package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/beerlist/beerlist/internal/core/domain"
)

const collectionBeers = "beers"

type BeerRepository struct {
	col *mongo.Collection
}

func NewBeerRepository(db *mongo.Database) *BeerRepository {
	return &BeerRepository{col: db.Collection(collectionBeers)}
}

type beerDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Style    string             `bson:"style"`
	ImageURL string             `bson:"image_url"`
	ABV      *float64           `bson:"abv"`
}

func toBeerDocument(b *domain.Beer) beerDocument {
	return beerDocument{
		Name:     b.Name,
		Style:    b.Style,
		ImageURL: b.ImageURL,
		ABV:      b.ABV,
	}
}

func (d beerDocument) toDomain() *domain.Beer {
	return &domain.Beer{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Style:    d.Style,
		ImageURL: d.ImageURL,
		ABV:      d.ABV,
	}
}

// parseID converts a hex id; anything that is not a valid ObjectID cannot
// match a stored beer.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrBeerNotFound, id)
	}
	return oid, nil
}

// Create inserts a new beer document with a fresh ObjectID.
func (r *BeerRepository) Create(ctx context.Context, b *domain.Beer) (*domain.Beer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toBeerDocument(b)
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert beer: %w", err)
	}
	return doc.toDomain(), nil
}

// FindAll returns all beers in natural order.
func (r *BeerRepository) FindAll(ctx context.Context) ([]*domain.Beer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find beers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []beerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode beers: %w", err)
	}

	beers := make([]*domain.Beer, 0, len(docs))
	for _, d := range docs {
		beers = append(beers, d.toDomain())
	}
	return beers, nil
}

func (r *BeerRepository) FindByID(ctx context.Context, id string) (*domain.Beer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc beerDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBeerNotFound
		}
		return nil, fmt.Errorf("find beer: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the stored document with b.
func (r *BeerRepository) Update(ctx context.Context, b *domain.Beer) (*domain.Beer, error) {
	oid, err := parseID(b.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toBeerDocument(b)
	doc.ID = oid

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update beer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBeerNotFound
	}
	return doc.toDomain(), nil
}

func (r *BeerRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete beer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBeerNotFound
	}
	return nil
}
