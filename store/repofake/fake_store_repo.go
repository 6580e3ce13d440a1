package fakestorerepo

import (
	"sync"

	"github.com/jrsteele09/go-auth-session/store"
)

var _ store.Repo = (*FakeStoreRepo)(nil)

type FakeStoreRepo struct {
	values map[string]string
	lock   sync.RWMutex

	// Err, when set, is returned by every operation
	Err error

	writeErrs map[string]error
}

func NewFakeStoreRepo() *FakeStoreRepo {
	return &FakeStoreRepo{
		values:    make(map[string]string),
		writeErrs: make(map[string]error),
	}
}

func (sr *FakeStoreRepo) Get(key string) (string, bool, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	if sr.Err != nil {
		return "", false, sr.Err
	}
	value, ok := sr.values[key]
	return value, ok, nil
}

func (sr *FakeStoreRepo) Set(key, value string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if err := sr.writeErr(key); err != nil {
		return err
	}
	sr.values[key] = value
	return nil
}

func (sr *FakeStoreRepo) Delete(key string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if err := sr.writeErr(key); err != nil {
		return err
	}
	delete(sr.values, key)
	return nil
}

// Len returns the number of stored keys
func (sr *FakeStoreRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.values)
}

// FailWrites makes Set and Delete on key return err, reads keep working.
// A nil err clears the failure.
func (sr *FakeStoreRepo) FailWrites(key string, err error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if err == nil {
		delete(sr.writeErrs, key)
		return
	}
	sr.writeErrs[key] = err
}

func (sr *FakeStoreRepo) writeErr(key string) error {
	if sr.Err != nil {
		return sr.Err
	}
	return sr.writeErrs[key]
}
