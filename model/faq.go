package model

// FAQ is a single frequently-asked-question entry in a corpus.
// Its identity is its position in the corpus; entries are never
// mutated after the corpus is loaded.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}
