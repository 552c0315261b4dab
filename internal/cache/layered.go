package cache

import "time"

// Layered is the memory-over-disk cache used by the Canvas client. Reads
// check memory first and promote disk hits; writes go to both layers.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered builds the standard two-layer cache.
func NewLayered(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL),
		disk:   NewDisk(diskDir, diskTTL),
	}
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if v, ok := l.memory.Get(key); ok {
		return v, true
	}

	if v, ok := l.disk.Get(key); ok {
		// Promote with the memory layer's default TTL.
		_ = l.memory.Set(key, v, 0)
		return v, true
	}

	return nil, false
}

func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

func (l *Layered) Delete(key string) error {
	_ = l.memory.Delete(key)
	return l.disk.Delete(key)
}

func (l *Layered) Clear() error {
	_ = l.memory.Clear()
	return l.disk.Clear()
}
