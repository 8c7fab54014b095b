package pebble

import (
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/eigerco/intcode/pkg/db"
)

type Batch struct {
	batch     *pebble.Batch
	committed atomic.Bool
	closed    atomic.Bool
}

// NewBatch starts an atomic group of writes. Nothing is visible until Commit.
func (p *KVStore) NewBatch() db.Batch {
	return &Batch{
		batch: p.db.NewBatch(),
	}
}

func (b *Batch) done() bool {
	return b.committed.Load() || b.closed.Load()
}

func (b *Batch) Put(key, value []byte) error {
	if b.done() {
		return ErrBatchDone
	}
	return b.batch.Set(key, value, nil)
}

func (b *Batch) Delete(key []byte) error {
	if b.done() {
		return ErrBatchDone
	}
	return b.batch.Delete(key, nil)
}

func (b *Batch) Commit() error {
	if b.done() {
		return ErrBatchDone
	}
	if err := b.batch.Commit(pebble.Sync); err != nil {
		return err
	}
	b.committed.Store(true)
	return nil
}

// Close releases the batch; uncommitted writes are discarded
func (b *Batch) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	return b.batch.Close()
}
