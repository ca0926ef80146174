package cache

import (
	"sync"

	"github.com/example/shipment-label-service/internal/domain"
)

type MemoryShipmentCache struct {
	mu    sync.RWMutex
	store map[string]domain.Shipment
}

func NewMemoryShipmentCache() *MemoryShipmentCache {
	return &MemoryShipmentCache{store: make(map[string]domain.Shipment)}
}

func (c *MemoryShipmentCache) Get(id string) (domain.Shipment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.store[id]
	return s, ok
}

func (c *MemoryShipmentCache) Set(id string, s domain.Shipment) {
	c.mu.Lock()
	c.store[id] = s
	c.mu.Unlock()
}

func (c *MemoryShipmentCache) Delete(id string) {
	c.mu.Lock()
	delete(c.store, id)
	c.mu.Unlock()
}

var _ domain.ShipmentCache = (*MemoryShipmentCache)(nil)
