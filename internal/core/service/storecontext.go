package service

import (
	"context"
	"sync"
)

// storeContext caches the chatbot's catalog summary. It is built lazily on
// first use and invalidated whenever the catalog mutates, so the assistant
// never describes products that no longer exist.
type storeContext struct {
	mu    sync.Mutex
	value string
	valid bool
}

func newStoreContext() *storeContext {
	return &storeContext{}
}

func (c *storeContext) get(ctx context.Context, build func(context.Context) (string, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.value, nil
	}

	value, err := build(ctx)
	if err != nil {
		return "", err
	}

	c.value = value
	c.valid = true
	return value, nil
}

func (c *storeContext) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.value = ""
	c.mu.Unlock()
}
