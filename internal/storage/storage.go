// Package storage provides the key-value blob backend the stores persist to.
// Implementations hold whole JSON blobs under string keys, nothing more.
package storage

// Backend is a minimal blob store. Get reports absence via the bool so a
// missing key is not an error.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
