package databases

// go generate: mockery --name PageContentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageContentDatabase is a single-document store for a page's editable copy.
// Every read and write filters on the fixed page key, so each collection can
// hold at most one live document per key regardless of write races.
type PageContentDatabase interface {
	Get(ctx context.Context, key string, v interface{}) error
	Upsert(ctx context.Context, key string, set bson.M, v interface{}) error
}

type pageContentDatabase struct {
	db         DatabaseHelper
	collection string
}

// NewPageContentDatabase initializes a keyed singleton store over the named collection
func NewPageContentDatabase(db DatabaseHelper, collection string) PageContentDatabase {
	return &pageContentDatabase{
		db:         db,
		collection: collection,
	}
}

func (c *pageContentDatabase) Get(ctx context.Context, key string, v interface{}) error {
	return c.db.Collection(c.collection).FindOne(ctx, bson.M{"page": key}).Decode(v)
}

// Upsert applies the given $set to the keyed document, creating it when
// missing, and decodes the resulting document into v.
func (c *pageContentDatabase) Upsert(ctx context.Context, key string, set bson.M, v interface{}) error {
	upsert := true
	after := options.After
	opts := &options.FindOneAndUpdateOptions{
		Upsert:         &upsert,
		ReturnDocument: &after,
	}
	// the equality filter seeds the page key on insert
	update := bson.M{"$set": set}
	return c.db.Collection(c.collection).FindOneAndUpdate(ctx, bson.M{"page": key}, update, opts).Decode(v)
}
