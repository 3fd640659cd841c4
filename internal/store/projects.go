package store

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/repository"
)

// ProjectRepository implements project.Repository on the store.
type ProjectRepository struct {
	s *Store
}

var _ project.Repository = (*ProjectRepository)(nil)

// NewProjectRepository creates a project repository.
func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{s: s}
}

// Create inserts a project.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	row := *proj
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		return insertNew(txn, TableProjects, row.ID, &row)
	}, TableProjects)
}

// Get fetches a project by ID.
func (r *ProjectRepository) Get(_ context.Context, id string) (*project.Project, error) {
	txn := r.s.db.Txn(false)
	obj, err := txn.First(TableProjects, indexID, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, repository.ErrNotFound
	}
	out := *obj.(*project.Project)
	return &out, nil
}

// List returns projects in creation order.
func (r *ProjectRepository) List(_ context.Context) ([]project.Project, error) {
	return listProjects(r.s.db.Txn(false))
}

// Update replaces a stored project.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	row := *proj
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(TableProjects, indexID, row.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return repository.ErrNotFound
		}
		return txn.Insert(TableProjects, &row)
	}, TableProjects)
}

// Delete removes a project with its expenses and labor records.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(TableProjects, indexID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return repository.ErrNotFound
		}
		if err := txn.Delete(TableProjects, existing); err != nil {
			return err
		}
		if _, err := txn.DeleteAll(TableExpenses, indexProjectID, id); err != nil {
			return err
		}
		if _, err := txn.DeleteAll(TableLabor, indexProjectID, id); err != nil {
			return err
		}
		return nil
	}, TableProjects, TableExpenses, TableLabor)
}

func listProjects(txn *memdb.Txn) ([]project.Project, error) {
	it, err := txn.Get(TableProjects, indexID)
	if err != nil {
		return nil, err
	}
	out := make([]project.Project, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*project.Project))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
