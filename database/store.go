package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/schema"
	"github.com/rediwo/redi-json/serializer"
	"github.com/rediwo/redi-json/utils"
)

// Store loads records of registered models. Relations of the returned records
// are loaded lazily, on first access, with the context of the call that
// produced the record.
type Store struct {
	db         *DB
	serializer *serializer.Serializer
	logger     logger.Logger
}

func NewStore(db *DB, s *serializer.Serializer, l logger.Logger) *Store {
	return &Store{db: db, serializer: s, logger: l}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Find loads the record of model whose primary key equals id
func (s *Store) Find(ctx context.Context, model string, id any) (*serializer.Record, error) {
	sc, err := s.serializer.Registry().Schema(model)
	if err != nil {
		return nil, err
	}
	pk, err := sc.GetPrimaryKey()
	if err != nil {
		return nil, err
	}

	records, err := s.query(ctx, sc, s.selectWhere(sc, pk.GetColumnName())+" LIMIT 1", id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s %v", ErrNotFound, model, id)
	}
	return records[0], nil
}

// FindByKey is Find with the primary key given as text, as it appears in a URL
func (s *Store) FindByKey(ctx context.Context, model string, raw string) (*serializer.Record, error) {
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
	return s.Find(ctx, model, id)
}

// List loads up to limit records of model ordered by primary key. A limit
// of zero or less means no limit.
func (s *Store) List(ctx context.Context, model string, limit int) ([]*serializer.Record, error) {
	sc, err := s.serializer.Registry().Schema(model)
	if err != nil {
		return nil, err
	}

	query := s.selectFrom(sc)
	if pk, err := sc.GetPrimaryKey(); err == nil {
		query += " ORDER BY " + s.db.Dialect.Quote(pk.GetColumnName())
	}
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	return s.query(ctx, sc, query)
}

func (s *Store) selectFrom(sc *schema.Schema) string {
	columns := make([]string, len(sc.Fields))
	for i, column := range sc.ColumnNames() {
		columns[i] = s.db.Dialect.Quote(column)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), s.db.Dialect.Quote(sc.TableName))
}

func (s *Store) selectWhere(sc *schema.Schema, column string) string {
	return fmt.Sprintf("%s WHERE %s = %s", s.selectFrom(sc), s.db.Dialect.Quote(column), s.db.Dialect.Placeholder(1))
}

func (s *Store) query(ctx context.Context, sc *schema.Schema, query string, args ...any) ([]*serializer.Record, error) {
	logger.OrGlobal(s.logger).Debug("SQL: %s %v", query, args)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", sc.TableName, err)
	}
	defer rows.Close()

	maps, err := utils.ScanRowsToMaps(rows)
	if err != nil {
		return nil, err
	}

	records := make([]*serializer.Record, len(maps))
	for i, values := range maps {
		records[i] = serializer.NewRecord(sc.Name, values).
			WithSerializer(s.serializer).
			WithLoader(&relationLoader{store: s, ctx: ctx})
	}
	return records, nil
}

// relatedQuery builds the query loading the records of relation for one owner
func (s *Store) relatedQuery(owner *schema.Schema, relation string) (*schema.Schema, schema.Lookup, string, error) {
	rel, err := owner.GetRelation(relation)
	if err != nil {
		return nil, schema.Lookup{}, "", err
	}
	related, err := s.serializer.Registry().Schema(rel.Model)
	if err != nil {
		return nil, schema.Lookup{}, "", err
	}
	lookup, err := schema.BuildLookup(&rel, owner, related)
	if err != nil {
		return nil, schema.Lookup{}, "", fmt.Errorf("relation %s.%s: %w", owner.Name, relation, err)
	}

	if lookup.ThroughTable == "" {
		query := s.selectWhere(related, lookup.Column)
		if pk, err := related.GetPrimaryKey(); err == nil {
			query += " ORDER BY " + s.db.Dialect.Quote(pk.GetColumnName())
		}
		return related, lookup, query, nil
	}

	q := s.db.Dialect.Quote
	columns := make([]string, len(related.Fields))
	for i, column := range related.ColumnNames() {
		columns[i] = "t." + q(column)
	}
	query := fmt.Sprintf("SELECT %s FROM %s t JOIN %s j ON j.%s = t.%s WHERE j.%s = %s ORDER BY t.%s",
		strings.Join(columns, ", "),
		q(lookup.Table),
		q(lookup.ThroughTable),
		q(lookup.ThroughTarget), q(lookup.Column),
		q(lookup.ThroughSource), s.db.Dialect.Placeholder(1),
		q(lookup.Column),
	)
	return related, lookup, query, nil
}

type relationLoader struct {
	store *Store
	ctx   context.Context
}

func (l *relationLoader) load(r *serializer.Record, relation string) ([]*serializer.Record, error) {
	owner, err := l.store.serializer.Registry().Schema(r.ModelName())
	if err != nil {
		return nil, err
	}
	related, lookup, query, err := l.store.relatedQuery(owner, relation)
	if err != nil {
		return nil, err
	}

	key, err := r.Attr(lookup.SourceColumn)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, nil
	}
	return l.store.query(l.ctx, related, query, key)
}

func (l *relationLoader) LoadOne(r *serializer.Record, relation string) (serializer.Serializable, error) {
	records, err := l.load(r, relation)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (l *relationLoader) LoadMany(r *serializer.Record, relation string) ([]serializer.Serializable, error) {
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

// ParseKey converts a primary key taken from a URL into the field's Go type
func ParseKey(field *schema.Field, raw string) (any, error) {
	switch field.Type {
	case schema.FieldTypeInt, schema.FieldTypeInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidKey, field.Name, raw, err)
		}
		return n, nil
	default:
		return raw, nil
	}
}
