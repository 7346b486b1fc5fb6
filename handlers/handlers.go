package handlers

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"ngim/engine"
	"ngim/store"
)

// The pipeline engine is shared process-wide and replaced wholesale when the
// dataset is reloaded; the lock guarantees handlers see old or new, never a
// partial swap.
var (
	engineMu  sync.RWMutex
	appEngine *engine.Engine
	loadFn    func() (*store.Dataset, error)
	validate  = validator.New()
)

// SetEngine installs the active pipeline engine.
func SetEngine(e *engine.Engine) {
	engineMu.Lock()
	appEngine = e
	engineMu.Unlock()
}

// SetLoader installs the snapshot loader used by the data refresh endpoint.
func SetLoader(fn func() (*store.Dataset, error)) {
	loadFn = fn
}

// GetEngine returns the active pipeline engine.
func GetEngine() *engine.Engine {
	engineMu.RLock()
	defer engineMu.RUnlock()
	return appEngine
}
