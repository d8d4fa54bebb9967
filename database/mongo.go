package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/schema"
	"github.com/rediwo/redi-json/serializer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore loads records from MongoDB. A model's table name is its
// collection and its primary key column is stored as _id. Relations load
// lazily like those of Store; many-to-many relations go through a junction
// collection.
type MongoStore struct {
	client     *mongo.Client
	db         *mongo.Database
	serializer *serializer.Serializer
	logger     logger.Logger
}

// OpenMongo connects to the MongoDB deployment at uri. The database name is
// taken from the URI path.
func OpenMongo(ctx context.Context, uri string, s *serializer.Serializer, l logger.Logger) (*MongoStore, error) {
	dbName, err := mongoDatabaseName(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:     client,
		db:         client.Database(dbName),
		serializer: s,
		logger:     l,
	}, nil
}

// mongoDatabaseName returns the database named by the path of uri
func mongoDatabaseName(uri string) (string, error) {
	if !IsMongoURI(uri) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("host is required in MongoDB URI")
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", fmt.Errorf("database name is required in MongoDB URI")
	}
	return name, nil
}

// Close disconnects from MongoDB
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Database returns the MongoDB database the store reads from
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

// Find loads the record of model whose primary key equals id
func (s *MongoStore) Find(ctx context.Context, model string, id any) (*serializer.Record, error) {
	sc, err := s.serializer.Registry().Schema(model)
	if err != nil {
		return nil, err
	}

	records, err := s.find(ctx, sc, bson.M{"_id": id}, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s %v", ErrNotFound, model, id)
	}
	return records[0], nil
}

// FindByKey is Find with the primary key given as text. For string keys a
// valid hex ObjectID matches either the ObjectID or the literal string.
func (s *MongoStore) FindByKey(ctx context.Context, model string, raw string) (*serializer.Record, error) {
	sc, err := s.serializer.Registry().Schema(model)
	if err != nil {
		return nil, err
	}
	pk, err := sc.GetPrimaryKey()
	if err != nil {
		return nil, err
	}
	id, err := ParseKey(pk, raw)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": id}
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil && pk.Type != schema.FieldTypeInt && pk.Type != schema.FieldTypeInt64 {
		filter = bson.M{"_id": bson.M{"$in": bson.A{oid, raw}}}
	}

	records, err := s.find(ctx, sc, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s %v", ErrNotFound, model, raw)
	}
	return records[0], nil
}

// List loads up to limit records of model ordered by primary key. A limit
// of zero or less means no limit.
func (s *MongoStore) List(ctx context.Context, model string, limit int) ([]*serializer.Record, error) {
	sc, err := s.serializer.Registry().Schema(model)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, sc, bson.M{}, limit)
}

func (s *MongoStore) find(ctx context.Context, sc *schema.Schema, filter bson.M, limit int) ([]*serializer.Record, error) {
	logger.OrGlobal(s.logger).Debug("MongoDB: %s.find(%v)", sc.TableName, filter)

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection(sc.TableName).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", sc.TableName, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", sc.TableName, err)
	}

	records := make([]*serializer.Record, len(docs))
	for i, doc := range docs {
		records[i] = serializer.NewRecord(sc.Name, documentValues(sc, doc)).
			WithSerializer(s.serializer).
			WithLoader(&mongoLoader{store: s, ctx: ctx})
	}
	return records, nil
}

// mongoField maps a column to its document field
func mongoField(sc *schema.Schema, column string) string {
	if pk, err := sc.GetPrimaryKey(); err == nil && pk.GetColumnName() == column {
		return "_id"
	}
	return column
}

// documentValues returns the column values of doc. Columns missing from the
// document are nil.
func documentValues(sc *schema.Schema, doc bson.M) map[string]any {
	values := make(map[string]any, len(sc.Fields))
	for _, column := range sc.ColumnNames() {
		values[column] = doc[mongoField(sc, column)]
	}
	return values
}

type mongoLoader struct {
	store *MongoStore
	ctx   context.Context
}

func (l *mongoLoader) load(r *serializer.Record, relation string) ([]*serializer.Record, error) {
	registry := l.store.serializer.Registry()
	owner, err := registry.Schema(r.ModelName())
	if err != nil {
		return nil, err
	}
	rel, err := owner.GetRelation(relation)
	if err != nil {
		return nil, err
	}
	related, err := registry.Schema(rel.Model)
	if err != nil {
		return nil, err
	}
	lookup, err := schema.BuildLookup(&rel, owner, related)
	if err != nil {
		return nil, fmt.Errorf("relation %s.%s: %w", owner.Name, relation, err)
	}

	key, err := r.Attr(lookup.SourceColumn)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, nil
	}

	field := mongoField(related, lookup.Column)
	if lookup.ThroughTable == "" {
		return l.store.find(l.ctx, related, bson.M{field: key}, 0)
	}

	targets, err := l.throughTargets(lookup, key)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return l.store.find(l.ctx, related, bson.M{field: bson.M{"$in": targets}}, 0)
}

// throughTargets returns the related keys the junction collection pairs with key
func (l *mongoLoader) throughTargets(lookup schema.Lookup, key any) (bson.A, error) {
	cursor, err := l.store.db.Collection(lookup.ThroughTable).Find(l.ctx, bson.M{lookup.ThroughSource: key})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", lookup.ThroughTable, err)
	}

	var links []bson.M
	if err := cursor.All(l.ctx, &links); err != nil {
		return nil, err
	}

	targets := make(bson.A, 0, len(links))
	for _, link := range links {
		if target, ok := link[lookup.ThroughTarget]; ok && target != nil {
			targets = append(targets, target)
		}
	}
	return targets, nil
}

func (l *mongoLoader) LoadOne(r *serializer.Record, relation string) (serializer.Serializable, error) {
	records, err := l.load(r, relation)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (l *mongoLoader) LoadMany(r *serializer.Record, relation string) ([]serializer.Serializable, error) {
	records, err := l.load(r, relation)
	if err != nil {
		return nil, err
	}
	items := make([]serializer.Serializable, len(records))
	for i, rec := range records {
		items[i] = rec
	}
	return items, nil
}
