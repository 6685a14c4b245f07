package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gcbaptista/go-faq-engine/model"
)

// FAQStore holds the ordered FAQ corpus an index was built from. The
// position of an entry is its identity for the lifetime of the process;
// the slice is loaded once and never mutated afterwards.
type FAQStore struct {
	Mu      sync.RWMutex
	Entries []model.FAQ
}

// Len returns the number of corpus entries.
func (fs *FAQStore) Len() int {
	fs.Mu.RLock()
	defer fs.Mu.RUnlock()
	return len(fs.Entries)
}

// Get returns the entry at the given corpus position.
func (fs *FAQStore) Get(i int) (model.FAQ, bool) {
	fs.Mu.RLock()
	defer fs.Mu.RUnlock()
	if i < 0 || i >= len(fs.Entries) {
		return model.FAQ{}, false
	}
	return fs.Entries[i], true
}

// All returns a copy of the corpus so callers cannot mutate the snapshot.
func (fs *FAQStore) All() []model.FAQ {
	fs.Mu.RLock()
	defer fs.Mu.RUnlock()
	entries := make([]model.FAQ, len(fs.Entries))
	copy(entries, fs.Entries)
	return entries
}

// gobFAQStoreData is a helper struct for Gob encoding/decoding FAQStore data.
// It excludes the mutex.
type gobFAQStoreData struct {
	Entries []model.FAQ
}

// GobEncode implements the gob.GobEncoder interface for FAQStore.
func (fs *FAQStore) GobEncode() ([]byte, error) {
	fs.Mu.RLock()
	defer fs.Mu.RUnlock()

	dataToEncode := gobFAQStoreData{Entries: fs.Entries}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode FAQ store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for FAQStore.
func (fs *FAQStore) GobDecode(data []byte) error {
	decodedData := gobFAQStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode FAQ store data: %w", err)
	}

	fs.Mu.Lock()
	defer fs.Mu.Unlock()

	fs.Entries = decodedData.Entries
	if fs.Entries == nil {
		fs.Entries = []model.FAQ{}
	}

	return nil
}
