package store

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/repository"
)

// LaborRepository implements labor.Repository on the store.
type LaborRepository struct {
	s *Store
}

var _ labor.Repository = (*LaborRepository)(nil)

// NewLaborRepository creates a labor repository.
func NewLaborRepository(s *Store) *LaborRepository {
	return &LaborRepository{s: s}
}

// Create inserts a labor record. The owning project must exist.
func (r *LaborRepository) Create(ctx context.Context, rec *labor.Record) error {
	row := *rec
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		ok, err := projectExists(txn, row.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrForeignKeyViolation
		}
		return insertNew(txn, TableLabor, row.ID, &row)
	}, TableLabor)
}

// Get fetches a labor record by ID.
func (r *LaborRepository) Get(_ context.Context, id string) (*labor.Record, error) {
	obj, err := r.s.db.Txn(false).First(TableLabor, indexID, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, repository.ErrNotFound
	}
	out := *obj.(*labor.Record)
	return &out, nil
}

// List returns every labor record, newest first.
func (r *LaborRepository) List(_ context.Context) ([]labor.Record, error) {
	return listLabor(r.s.db.Txn(false), "")
}

// ListByProject returns a project's labor records, newest first.
func (r *LaborRepository) ListByProject(_ context.Context, projectID string) ([]labor.Record, error) {
	return listLabor(r.s.db.Txn(false), projectID)
}

// Delete removes a labor record.
func (r *LaborRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(TableLabor, indexID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return repository.ErrNotFound
		}
		return txn.Delete(TableLabor, existing)
	}, TableLabor)
}

func listLabor(txn *memdb.Txn, projectID string) ([]labor.Record, error) {
	var (
		it  memdb.ResultIterator
		err error
	)
	if projectID == "" {
		it, err = txn.Get(TableLabor, indexID)
	} else {
		it, err = txn.Get(TableLabor, indexProjectID, projectID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]labor.Record, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*labor.Record))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
