// Package iocache is for durable storage of suggestions and review history.
package iocache

import (
	"sync"

	"github.com/docu3c/autocodex/internal/contract"
)

// CacheStoreManager manages the suggestion and history store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	suggestion   contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetSuggestionStore returns the suggestion CacheStore.
func (mgr *CacheStoreManager) GetSuggestionStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.suggestion
}

// GetHistoryStore returns the review HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
