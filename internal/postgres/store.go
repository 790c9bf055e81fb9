package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
)

// Store keeps every collection in one jsonb table. Live queries go through
// the hub; writes notify it locally and, when a publisher is wired, emit a
// change envelope so other instances re-query too.
type Store struct {
	db      *pgxpool.Pool
	hub     *docstore.Hub
	changes docstore.Publisher // may be nil
	service string
}

func NewStore(db *pgxpool.Pool, changes docstore.Publisher, service string) *Store {
	s := &Store{db: db, changes: changes, service: service}
	s.hub = docstore.NewHub(s.Snapshot)
	return s
}

// Hub exposes the subscription hub so the change-feed consumer can trigger
// re-queries for events produced by other instances.
func (s *Store) Hub() *docstore.Hub { return s.hub }

// Ensure creates the documents table.
func (s *Store) Ensure(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id         uuid PRIMARY KEY,
			collection text NOT NULL,
			doc        jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS documents_collection_created_at_idx
		ON documents (collection, created_at DESC)`)
	return err
}

func (s *Store) Create(ctx context.Context, collection string, doc any) (string, time.Time, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", time.Time{}, err
	}

	id := uuid.NewString()
	var createdAt time.Time
	err = s.db.QueryRow(ctx, `
		INSERT INTO documents (id, collection, doc)
		VALUES ($1, $2, $3)
		RETURNING created_at`, id, collection, b).Scan(&createdAt)
	if err != nil {
		return "", time.Time{}, err
	}

	s.changed(collection, id, docstore.EventDocCreated)
	return id, createdAt, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	b, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	ct, err := s.db.Exec(ctx, `
		UPDATE documents SET doc = doc || $3
		WHERE collection = $1 AND id = $2`, collection, id, b)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	}

	s.changed(collection, id, docstore.EventDocUpdated)
	return nil
}

func (s *Store) Subscribe(collection string, q docstore.Query, fn func([]docstore.Document)) (docstore.Unsubscribe, error) {
	return s.hub.Add(collection, q, fn), nil
}

// Snapshot compiles q to SQL over the jsonb column and runs it.
func (s *Store) Snapshot(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	sql, args, err := compileQuery(collection, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []docstore.Document
	for rows.Next() {
		var d docstore.Document
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.Data); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var fieldRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// fieldExpr builds the jsonb accessor for a document field. Field names
// come from internal constants today, but they are interpolated into the
// statement text, so anything outside a plain identifier is refused.
func fieldExpr(field string) (string, error) {
	if !fieldRe.MatchString(field) {
		return "", fmt.Errorf("bad field name %q", field)
	}
	return "doc->>'" + field + "'", nil
}

// compileQuery turns a docstore query into a parameterized statement.
// Only filter and sort values travel as parameters; field names must
// pass fieldExpr.
func compileQuery(collection string, q docstore.Query) (string, []any, error) {
	where := []string{"collection = $1"}
	args := []any{collection}

	for _, f := range q.Filters {
		n := len(args) + 1
		if f.Field == docstore.FieldCreatedAt && f.Op == docstore.OpGte {
			where = append(where, fmt.Sprintf("created_at >= $%d", n))
			args = append(args, f.Value)
			continue
		}
		expr, err := fieldExpr(f.Field)
		if err != nil {
			return "", nil, err
		}
		switch f.Op {
		case docstore.OpEq:
			where = append(where, fmt.Sprintf("%s = $%d", expr, n))
			args = append(args, fmt.Sprint(f.Value))
		case docstore.OpGte:
			where = append(where, fmt.Sprintf("%s >= $%d", expr, n))
			args = append(args, fmt.Sprint(f.Value))
		case docstore.OpIn:
			where = append(where, fmt.Sprintf("%s = ANY($%d)", expr, n))
			args = append(args, f.Value)
		default:
			return "", nil, fmt.Errorf("unsupported filter %s %s", f.Field, f.Op)
		}
	}

	orderBy := "created_at"
	if q.OrderBy != "" && q.OrderBy != docstore.FieldCreatedAt {
		expr, err := fieldExpr(q.OrderBy)
		if err != nil {
			return "", nil, err
		}
		orderBy = expr
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}

	sql := fmt.Sprintf(`
		SELECT id, created_at, doc FROM documents
		WHERE %s ORDER BY %s %s`, strings.Join(where, " AND "), orderBy, dir)
	return sql, args, nil
}

func (s *Store) changed(collection, id, eventType string) {
	s.hub.Notify(collection)
	if s.changes == nil {
		return
	}
	s.changes.PublishChange(docstore.Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Collection: collection,
		DocID:      id,
		OccurredAt: time.Now().UTC(),
		Producer:   s.service,
	})
}
