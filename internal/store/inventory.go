package store

import (
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/go-memdb"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/repository"
)

// InventoryRepository implements inventory.Repository on the store.
type InventoryRepository struct {
	s *Store
}

var _ inventory.Repository = (*InventoryRepository)(nil)

// NewInventoryRepository creates an inventory repository.
func NewInventoryRepository(s *Store) *InventoryRepository {
	return &InventoryRepository{s: s}
}

func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	row := *item
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		return insertNew(txn, TableInventory, row.ID, &row)
	}, TableInventory)
}

func (r *InventoryRepository) Get(_ context.Context, id string) (*inventory.Item, error) {
	obj, err := r.s.db.Txn(false).First(TableInventory, indexID, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, repository.ErrNotFound
	}
	out := *obj.(*inventory.Item)
	return &out, nil
}

// List returns items ordered by name.
func (r *InventoryRepository) List(_ context.Context) ([]inventory.Item, error) {
	return listInventory(r.s.db.Txn(false))
}

func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	row := *item
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(TableInventory, indexID, row.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return repository.ErrNotFound
		}
		return txn.Insert(TableInventory, &row)
	}, TableInventory)
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(TableInventory, indexID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return repository.ErrNotFound
		}
		return txn.Delete(TableInventory, existing)
	}, TableInventory)
}

func listInventory(txn *memdb.Txn) ([]inventory.Item, error) {
	it, err := txn.Get(TableInventory, indexID)
	if err != nil {
		return nil, err
	}
	out := make([]inventory.Item, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*inventory.Item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
