package repository

import "context"

// Persister is the durable key-value port behind the in-memory store. Each
// key holds one whole collection serialised as a JSON array. Load returns
// ErrNotFound when nothing has been saved under the key yet. Keys lists the
// keys saved in a namespace.
//
// Entity repositories are declared next to their domain types (see
// project.Repository and friends); mocks for all of them live in mocks.
type Persister interface {
	Load(ctx context.Context, namespace, key string) ([]byte, error)
	Save(ctx context.Context, namespace, key string, data []byte) error
	Keys(ctx context.Context, namespace string) ([]string, error)
}
