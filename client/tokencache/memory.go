package tokencache

import (
	"context"
	"errors"
	"sync"

	"github.com/tiersept/example-app/models"
)

// ErrIncompletePair, Set'e token'lardan biri boş bir çift verildiğinde döner.
var ErrIncompletePair = errors.New("token pair must carry both tokens")

// Memory, process içi cache. Process kapanınca kaybolur.
type Memory struct {
	mu   sync.RWMutex
	pair *models.TokenPair
}

// NewMemory, boş bir Memory cache döner.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (*models.TokenPair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pair == nil {
		return nil, nil
	}
	// Kopya döner: çağıran değiştirse bile cache etkilenmez.
	pair := *m.pair
	return &pair, nil
}

func (m *Memory) Set(_ context.Context, pair *models.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *pair
	m.pair = &stored
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pair = nil
	return nil
}
