// Package outbox provides a persistent send queue for Discord messages.
//
// Queued messages are stored in a bbolt database, so they survive process
// restarts and are posted once the API accepts them.
package outbox

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var ErrEmpty = errors.New("empty queue")

const pollInterval = 500 * time.Millisecond

// Queue is a persistent FIFO queue backed by a bbolt bucket.
type Queue struct {
	db         *bolt.DB
	bucketName string
	added      chan struct{}
}

// NewQueue returns a queue with the given name, creating its bucket if needed.
func NewQueue(db *bolt.DB, name string) (*Queue, error) {
	bn := fmt.Sprintf("outbox-%s", name)
	q := &Queue{db: db, bucketName: bn, added: make(chan struct{}, 1)}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bn))
		return err
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Put appends an item to the queue.
func (q *Queue) Put(v []byte) error {
	err := q.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(q.bucketName))
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(id), v)
	})
	if err != nil {
		return err
	}
	select {
	case q.added <- struct{}{}:
	default:
	}
	return nil
}

// Get removes and returns the oldest item.
// Returns [ErrEmpty] when the queue holds no items.
func (q *Queue) Get() ([]byte, error) {
	var v2 []byte
	err := q.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(q.bucketName))
		c := b.Cursor()
		k, v := c.First()
		if k == nil {
			return ErrEmpty
		}
		if err := b.Delete(k); err != nil {
			return err
		}
		v2 = append([]byte(nil), v...)
		return nil
	})
	return v2, err
}

// GetWithContext removes and returns the oldest item,
// blocking until an item is available or the context is done.
func (q *Queue) GetWithContext(ctx context.Context) ([]byte, error) {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		v, err := q.Get()
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrEmpty) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.added:
		case <-t.C:
		}
	}
}

// Clear removes all items from the queue.
func (q *Queue) Clear() error {
	return q.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(q.bucketName))
		return b.ForEach(func(k, v []byte) error {
			return b.Delete(k)
		})
	})
}

// Size returns the number of queued items.
func (q *Queue) Size() int {
	var c int
	q.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(q.bucketName))
		c = b.Stats().KeyN
		return nil
	})
	return c
}

// Empty reports whether the queue holds no items.
func (q *Queue) Empty() bool {
	return q.Size() == 0
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
