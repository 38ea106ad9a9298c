package storage

import "errors"

// Keys for the persisted session state. The user record and token are
// written and cleared together by the session store; partial presence is
// treated as invalid on restore.
const (
	KeyUser     = "user"
	KeyToken    = "token"
	KeyDeviceID = "device_id"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a durable string key-value store. Implementations must be safe
// for concurrent use. Writes to different keys are not transactional.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
