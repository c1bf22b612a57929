package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const defaultLocalStorePath = "data/quotes.json"

// getenvDefault resolves table names and store paths, shared by every backend
// in this package.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// localState is the on-disk document: one JSON file holding the cached
// catalog and the full quote list, mirroring the remote backend's contract.
type localState struct {
	Catalog *entities.RawCatalog `json:"catalog,omitempty"`
	Quotes  []entities.Quote     `json:"quotes"`
}

// LocalStore is the degraded-mode storage backend used when DynamoDB is
// unreachable or unconfigured. A mutex serializes access and every write
// rewrites the file through a rename so a crash never leaves a torn document.
type LocalStore struct {
	mu   sync.Mutex
	path string
}

func NewLocalStore() *LocalStore {
	return &LocalStore{
		path: getenvDefault("LOCAL_STORE_PATH", defaultLocalStorePath),
	}
}

func NewLocalStoreAt(path string) *LocalStore {
	return &LocalStore{path: path}
}

func (s *LocalStore) load() (localState, error) {
	var state localState
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read local store: %w", err)
	}
	if err := json.Unmarshal(b, &state); err != nil {
		return localState{}, fmt.Errorf("decode local store: %w", err)
	}
	return state, nil
}

func (s *LocalStore) save(state localState) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit local store: %w", err)
	}
	return nil
}

// LocalQuoteRepository implements IQuoteRepository over a LocalStore.

type LocalQuoteRepository struct {
	store *LocalStore
}

var _ interfaces.IQuoteRepository = (*LocalQuoteRepository)(nil)

func NewLocalQuoteRepository(store *LocalStore) *LocalQuoteRepository {
	return &LocalQuoteRepository{store: store}
}

func (r *LocalQuoteRepository) Source() string {
	return "local"
}

func (r *LocalQuoteRepository) Append(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, err := r.store.load()
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	state.Quotes = append(state.Quotes, q)
	if err := r.store.save(state); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *LocalQuoteRepository) List(_ context.Context) ([]entities.Quote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, err := r.store.load()
	if err != nil {
		return nil, err
	}
	quotes := make([]entities.Quote, len(state.Quotes))
	copy(quotes, state.Quotes)
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (r *LocalQuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, err := r.store.load()
	if err != nil {
		return entities.Quote{}, err
	}
	for _, q := range state.Quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return entities.Quote{}, nil
}

func (r *LocalQuoteRepository) UpdateStatus(_ context.Context, id string, status entities.QuoteStatus, at time.Time) (entities.Quote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, err := r.store.load()
	if err != nil {
		return entities.Quote{}, err
	}
	for i, q := range state.Quotes {
		if q.ID != id {
			continue
		}
		q.Status = status
		q.UpdatedAt = at.UTC()
		if q.Lifecycle == nil {
			q.Lifecycle = map[entities.QuoteStatus]time.Time{}
		}
		if _, stamped := q.Lifecycle[status]; !stamped {
			q.Lifecycle[status] = at.UTC()
		}
		state.Quotes[i] = q
		if err := r.store.save(state); err != nil {
			return entities.Quote{}, err
		}
		return q, nil
	}
	return entities.Quote{}, nil
}

// LocalCatalogRepository implements ICatalogRepository over a LocalStore.

type LocalCatalogRepository struct {
	store *LocalStore
}

var _ interfaces.ICatalogRepository = (*LocalCatalogRepository)(nil)

func NewLocalCatalogRepository(store *LocalStore) *LocalCatalogRepository {
	return &LocalCatalogRepository{store: store}
}

func (r *LocalCatalogRepository) Source() string {
	return "local"
}

func (r *LocalCatalogRepository) Load(_ context.Context) (entities.RawCatalog, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, err := r.store.load()
	if err != nil {
		return entities.RawCatalog{}, false, err
	}
	if state.Catalog == nil {
		return entities.RawCatalog{}, false, nil
	}
	return *state.Catalog, true, nil
}

func (r *LocalCatalogRepository) Save(_ context.Context, c entities.Catalog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, err := r.store.load()
	if err != nil {
		return err
	}
	raw := c.ToStorageForm()
	state.Catalog = &raw
	return r.store.save(state)
}
