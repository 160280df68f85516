package repository

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	bolt "github.com/boltdb/bolt"

	"yemalin/internal/domain"
)

const cartsBucket = "abandoned_carts"

// BoltCarts BoltDB-хранилище брошенных корзин. Ключ: нормализованный email,
// поэтому на один адрес приходится не больше одной записи.
type BoltCarts struct {
	db *bolt.DB
}

var _ AbandonedCartRepository = (*BoltCarts)(nil)

// OpenBoltCarts opens (or creates) the cart database file and its bucket.
func OpenBoltCarts(path string) (*BoltCarts, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(cartsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltCarts{db: db}, nil
}

// Close releases the database file lock.
func (b *BoltCarts) Close() error {
	return b.db.Close()
}

func (b *BoltCarts) Save(_ context.Context, c *domain.AbandonedCart) error {
	c.Email = NormalizeEmail(c.Email)
	c.Reminders = domain.ReminderFlags{}
	c.Recovered = false
	c.RecoveredAt = nil
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cartsBucket)).Put([]byte(c.Email), data)
	})
}

func (b *BoltCarts) GetActive(_ context.Context, email string) (*domain.AbandonedCart, error) {
	var c domain.AbandonedCart
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(cartsBucket)).Get([]byte(NormalizeEmail(email)))
		if v == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(v, &c); err != nil {
			return err
		}
		if c.Recovered {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns unrecovered carts, oldest abandonment first. A record
// that fails to decode is logged and skipped.
func (b *BoltCarts) ListActive(_ context.Context) ([]domain.AbandonedCart, error) {
	out := make([]domain.AbandonedCart, 0)
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cartsBucket)).ForEach(func(k, v []byte) error {
			var c domain.AbandonedCart
			if err := json.Unmarshal(v, &c); err != nil {
				log.Printf("[WARN] skip corrupt cart %q: %v", k, err)
				return nil
			}
			if !c.Recovered {
				out = append(out, c)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AbandonedAt.Before(out[j].AbandonedAt) })
	return out, nil
}

func (b *BoltCarts) MarkReminderSent(_ context.Context, email string, stage int) error {
	return b.mutateActive(email, func(c *domain.AbandonedCart) {
		c.Reminders.Mark(stage)
	})
}

func (b *BoltCarts) MarkRecovered(_ context.Context, email string, at time.Time) error {
	return b.mutateActive(email, func(c *domain.AbandonedCart) {
		t := at.UTC()
		c.Recovered = true
		c.RecoveredAt = &t
	})
}

// mutateActive read-modify-write of an unrecovered cart inside one bolt transaction
func (b *BoltCarts) mutateActive(email string, fn func(c *domain.AbandonedCart)) error {
	key := []byte(NormalizeEmail(email))
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(cartsBucket))
		v := bucket.Get(key)
		if v == nil {
			return ErrNotFound
		}
		var c domain.AbandonedCart
		if err := json.Unmarshal(v, &c); err != nil {
			return err
		}
		if c.Recovered {
			return ErrNotFound
		}
		fn(&c)
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return bucket.Put(key, data)
	})
}
