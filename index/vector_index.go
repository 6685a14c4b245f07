package index

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/gcbaptista/go-faq-engine/config"
)

// VectorIndex holds the numeric representation of one FAQ corpus: a term
// vocabulary mapping each normalized term to a stable column, the corpus
// idf value per column, and one L2-normalized weight vector per entry.
// It is built once and treated as read-only afterwards; any number of
// concurrent match calls may read it without coordination.
type VectorIndex struct {
	Mu         sync.RWMutex
	Vocabulary map[string]int // Normalized term -> column position
	DocFreq    []int          // Per column: number of corpus entries containing the term
	IDF        []float64      // Per column: log((1+N)/(1+df)) + 1
	Vectors    [][]float64    // Per corpus entry: dense tf-idf weights, unit L2 norm (or all-zero)
	Settings   *config.MatcherSettings
}

// Column returns the vocabulary column for a term, or false if the term
// was never observed in the corpus.
func (vi *VectorIndex) Column(term string) (int, bool) {
	col, ok := vi.Vocabulary[term]
	return col, ok
}

// TermCount returns the vocabulary size.
func (vi *VectorIndex) TermCount() int {
	return len(vi.Vocabulary)
}

// DocCount returns the number of indexed corpus entries.
func (vi *VectorIndex) DocCount() int {
	return len(vi.Vectors)
}

// gobVectorIndexData is a helper struct for Gob encoding/decoding VectorIndex data.
// It excludes the mutex.
type gobVectorIndexData struct {
	Vocabulary map[string]int
	DocFreq    []int
	IDF        []float64
	Vectors    [][]float64
	Settings   *config.MatcherSettings
}

// GobEncode implements the gob.GobEncoder interface for VectorIndex.
func (vi *VectorIndex) GobEncode() ([]byte, error) {
	vi.Mu.RLock() // Ensure consistent data during encoding
	defer vi.Mu.RUnlock()

	dataToEncode := gobVectorIndexData{
		Vocabulary: vi.Vocabulary,
		DocFreq:    vi.DocFreq,
		IDF:        vi.IDF,
		Vectors:    vi.Vectors,
		Settings:   vi.Settings,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for VectorIndex.
func (vi *VectorIndex) GobDecode(data []byte) error {
	decodedData := gobVectorIndexData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	vi.Mu.Lock() // Ensure exclusive access during decoding
	defer vi.Mu.Unlock()

	vi.Vocabulary = decodedData.Vocabulary
	vi.DocFreq = decodedData.DocFreq
	vi.IDF = decodedData.IDF
	vi.Vectors = decodedData.Vectors
	vi.Settings = decodedData.Settings

	// Ensure maps are initialized if they were nil after decoding (e.g. from an empty file)
	if vi.Vocabulary == nil {
		vi.Vocabulary = make(map[string]int)
	}

	return nil
}
