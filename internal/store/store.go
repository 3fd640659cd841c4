// Package store keeps the four cost-tracking collections in memory and
// mirrors each collection wholesale to a Persister after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/repository"
)

// DefaultNamespace is the persistence namespace of the current data layout.
const DefaultNamespace = "megacost_v2"

// Store owns the in-memory database. Writers are serialised so that the
// snapshot handed to the persister always matches a committed state.
type Store struct {
	db        *memdb.MemDB
	persister repository.Persister
	namespace string
	logger    *slog.Logger

	mu sync.Mutex
}

// Open creates the store and loads every collection from persister. A nil
// persister keeps the store purely in memory.
func Open(ctx context.Context, persister repository.Persister, namespace string, logger *slog.Logger) (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("creating memdb: %w", err)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &Store{db: db, persister: persister, namespace: namespace, logger: logger}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	keys, err := s.persister.Keys(ctx, s.namespace)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	saved := make(map[string]bool, len(keys))
	for _, key := range keys {
		saved[key] = true
	}
	var unknown []string
	for _, key := range keys {
		if !slices.Contains(Collections, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 && s.logger != nil {
		s.logger.Warn("ignoring unknown collections", "namespace", s.namespace, "keys", unknown)
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	counts := map[string]int{}
	for _, table := range Collections {
		if !saved[table] {
			continue
		}
		data, err := s.persister.Load(ctx, s.namespace, table)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("loading %s: %w", table, err)
		}
		n, err := decodeInto(txn, table, data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", table, err)
		}
		counts[table] = n
	}
	txn.Commit()

	if s.logger != nil {
		s.logger.Info("store loaded",
			"namespace", s.namespace,
			"projects", counts[TableProjects],
			"expenses", counts[TableExpenses],
			"inventory", counts[TableInventory],
			"labor", counts[TableLabor])
	}
	return nil
}

func decodeInto(txn *memdb.Txn, table string, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	var objs []any
	switch table {
	case TableProjects:
		var rows []project.Project
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, err
		}
		for i := range rows {
			objs = append(objs, &rows[i])
		}
	case TableExpenses:
		var rows []expense.Expense
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, err
		}
		for i := range rows {
			objs = append(objs, &rows[i])
		}
	case TableInventory:
		var rows []inventory.Item
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, err
		}
		for i := range rows {
			objs = append(objs, &rows[i])
		}
	case TableLabor:
		var rows []labor.Record
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, err
		}
		for i := range rows {
			objs = append(objs, &rows[i])
		}
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	for _, obj := range objs {
		if err := txn.Insert(table, obj); err != nil {
			return 0, err
		}
	}
	return len(objs), nil
}

// write runs fn in a write transaction and, once committed, persists the
// given collections. A persist failure leaves the committed change in memory
// and is returned to the caller.
func (s *Store) write(ctx context.Context, fn func(txn *memdb.Txn) error, tables ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := s.db.Txn(true)
	if err := fn(txn); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()

	return s.persist(ctx, tables...)
}

func (s *Store) persist(ctx context.Context, tables ...string) error {
	if s.persister == nil {
		return nil
	}
	txn := s.db.Txn(false)
	for _, table := range tables {
		data, err := encode(txn, table)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", table, err)
		}
		if err := s.persister.Save(ctx, s.namespace, table, data); err != nil {
			if s.logger != nil {
				s.logger.Error("persist failed", "namespace", s.namespace, "collection", table, "error", err)
			}
			return fmt.Errorf("persisting %s: %w", table, err)
		}
	}
	return nil
}

func encode(txn *memdb.Txn, table string) ([]byte, error) {
	var rows any
	var err error
	switch table {
	case TableProjects:
		rows, err = listProjects(txn)
	case TableExpenses:
		rows, err = listExpenses(txn, "")
	case TableInventory:
		rows, err = listInventory(txn)
	case TableLabor:
		rows, err = listLabor(txn, "")
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(rows)
}

// Flush writes every collection to the persister.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, Collections...)
}

func insertNew(txn *memdb.Txn, table, id string, obj any) error {
	existing, err := txn.First(table, indexID, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return repository.ErrDuplicateID
	}
	return txn.Insert(table, obj)
}

func projectExists(txn *memdb.Txn, id string) (bool, error) {
	obj, err := txn.First(TableProjects, indexID, id)
	if err != nil {
		return false, err
	}
	return obj != nil, nil
}
