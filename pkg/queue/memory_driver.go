package queue

import "context"

// memoryBuffer caps how many jobs the in-process driver holds before
// Push blocks.
const memoryBuffer = 1000

// MemoryDriver is a channel-backed driver for development and tests.
// Jobs do not survive a restart; production uses RedisDriver.
type MemoryDriver struct {
	ch chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.ch <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
