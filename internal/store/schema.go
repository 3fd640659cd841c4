package store

import "github.com/hashicorp/go-memdb"

// Table names double as the persistence keys of their collections.
const (
	TableProjects  = "projects"
	TableExpenses  = "expenses"
	TableInventory = "inventory"
	TableLabor     = "labor"
)

const (
	indexID        = "id"
	indexProjectID = "project_id"
)

// Collections lists every table in load order. Projects come first so that
// child rows always find their parent.
var Collections = []string{TableProjects, TableExpenses, TableInventory, TableLabor}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			TableProjects:  table(TableProjects, false),
			TableExpenses:  table(TableExpenses, true),
			TableInventory: table(TableInventory, false),
			TableLabor:     table(TableLabor, true),
		},
	}
}

func table(name string, child bool) *memdb.TableSchema {
	indexes := map[string]*memdb.IndexSchema{
		indexID: {
			Name:    indexID,
			Unique:  true,
			Indexer: &memdb.StringFieldIndex{Field: "ID"},
		},
	}
	if child {
		indexes[indexProjectID] = &memdb.IndexSchema{
			Name:    indexProjectID,
			Indexer: &memdb.StringFieldIndex{Field: "ProjectID"},
		}
	}
	return &memdb.TableSchema{Name: name, Indexes: indexes}
}
