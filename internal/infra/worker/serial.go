package worker

import "sync"

// KeyedSerial gives every key its own lock so work sharing a key runs
// one-at-a-time while different keys proceed in parallel. The history log
// uses it to serialize per-user read-modify-write appends.
type KeyedSerial struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedSerial() *KeyedSerial {
	return &KeyedSerial{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedSerial) lockFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// Do runs fn exclusively among all calls sharing the same key.
func (k *KeyedSerial) Do(key string, fn func() error) error {
	l := k.lockFor(key)
	l.Lock()
	defer l.Unlock()
	return fn()
}
