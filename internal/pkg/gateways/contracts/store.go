package contracts

import (
	"time"

	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/cache"
)

// OptionStore is persistent, TTL-less storage for merchant credentials and
// gateway settings.
type OptionStore interface {
	// GetJSON loads the value stored under key into dest. The boolean
	// reports whether the key held a value at all.
	GetJSON(key string, dest interface{}) (bool, error)
	SetJSON(key string, value interface{}) error
}

// TransientStore is time-limited storage for handshake state and cached
// payment intents. Every write carries an explicit TTL.
type TransientStore interface {
	GetJSON(key string, dest interface{}) (bool, error)
	SetJSON(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
}

// DBOptionStore stores options in the database options table.
type DBOptionStore struct {
	DB *gorm.DB
}

func NewDBOptionStore(db *gorm.DB) *DBOptionStore {
	return &DBOptionStore{DB: db}
}

func (s *DBOptionStore) GetJSON(key string, dest interface{}) (bool, error) {
	return models.GetOptionJSON(s.DB, key, dest)
}

func (s *DBOptionStore) SetJSON(key string, value interface{}) error {
	return models.SetOptionJSON(s.DB, key, value)
}

// CacheTransientStore stores transients in the shared Redis cache.
type CacheTransientStore struct{}

func NewCacheTransientStore() *CacheTransientStore {
	return &CacheTransientStore{}
}

func (s *CacheTransientStore) GetJSON(key string, dest interface{}) (bool, error) {
	return cache.GetJSON(key, dest)
}

func (s *CacheTransientStore) SetJSON(key string, value interface{}, ttl time.Duration) error {
	return cache.SetJSON(key, value, ttl)
}

func (s *CacheTransientStore) Delete(key string) error {
	return cache.Delete(key)
}
