package keylock

import "sync"

// KeyLock serializes operations on a single entity by string key. Auctions,
// escrows and disputes each get their own lock so unrelated entities never
// contend.
type KeyLock struct {
	locks sync.Map
}

func New() *KeyLock {
	return &KeyLock{}
}

func (k *KeyLock) Lock(key string) {
	mu, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

func (k *KeyLock) Unlock(key string) {
	mu, ok := k.locks.Load(key)
	if !ok {
		return
	}
	mu.(*sync.Mutex).Unlock()
}
