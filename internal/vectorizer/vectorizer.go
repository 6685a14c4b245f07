// Package vectorizer builds the numeric index for an FAQ corpus: the
// term vocabulary, per-term inverse document frequencies, and one
// L2-normalized tf-idf vector per corpus entry. The corpus is indexed
// once at startup; adding entries means rebuilding, not updating.
package vectorizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/index"
	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
	"github.com/gcbaptista/go-faq-engine/internal/tokenizer"
	"github.com/gcbaptista/go-faq-engine/model"
)

// NormalizeOptions derives the tokenizer options for an index from its
// settings. The matcher must use the same options at query time that the
// builder used at index time, otherwise query and document vectors live
// in different spaces.
func NormalizeOptions(settings *config.MatcherSettings) tokenizer.Options {
	if settings == nil {
		return tokenizer.Options{}
	}
	return tokenizer.Options{
		DisableStemming: settings.DisableStemming,
		ExtraStopwords:  settings.ExtraStopwords,
	}
}

// Build transforms a static FAQ corpus into an immutable VectorIndex.
// It fails with an EmptyCorpusError when the corpus has zero entries;
// an index that can never match anything must not be built silently.
func Build(faqs []model.FAQ, settings *config.MatcherSettings) (*index.VectorIndex, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if len(faqs) == 0 {
		return nil, internalErrors.NewEmptyCorpusError(settings.Name)
	}

	opts := NormalizeOptions(settings)
	tokenLists := make([][]string, len(faqs))
	for i, faq := range faqs {
		tokenLists[i] = tokenizer.Normalize(faq.Question, opts)
	}

	vocabulary := BuildVocabulary(tokenLists)
	docFreq, idf, vectors := ComputeWeights(tokenLists, vocabulary)

	return &index.VectorIndex{
		Vocabulary: vocabulary,
		DocFreq:    docFreq,
		IDF:        idf,
		Vectors:    vectors,
		Settings:   settings,
	}, nil
}

// BuildVocabulary collects the set of distinct terms observed across all
// token lists and assigns each a stable column. Columns are allocated in
// lexicographic term order so identical corpora always produce identical
// vocabularies. Terms appearing in a single entry are retained: the
// corpus is small and recall matters more than sparsity.
func BuildVocabulary(tokenLists [][]string) map[string]int {
	termSet := make(map[string]struct{})
	for _, tokens := range tokenLists {
		for _, token := range tokens {
			termSet[token] = struct{}{}
		}
	}

	terms := make([]string, 0, len(termSet))
	for term := range termSet {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	for column, term := range terms {
		vocabulary[term] = column
	}
	return vocabulary
}

// ComputeWeights computes, per vocabulary column, the document frequency
// and the smoothed inverse document frequency log((1+N)/(1+df)) + 1,
// then derives an L2-normalized tf-idf vector for every entry. The "+1"
// smoothing keeps every weight finite and positive even for terms that
// appear in all entries. An entry with zero distinct terms yields the
// zero vector; it stays in the corpus but can never be a top match.
func ComputeWeights(tokenLists [][]string, vocabulary map[string]int) (docFreq []int, idf []float64, vectors [][]float64) {
	docFreq = make([]int, len(vocabulary))
	for _, tokens := range tokenLists {
		seen := make(map[int]struct{}, len(tokens))
		for _, token := range tokens {
			column := vocabulary[token]
			if _, counted := seen[column]; !counted {
				seen[column] = struct{}{}
				docFreq[column]++
			}
		}
	}

	corpusSize := float64(len(tokenLists))
	idf = make([]float64, len(vocabulary))
	for column, df := range docFreq {
		idf[column] = math.Log((1+corpusSize)/(1+float64(df))) + 1
	}

	vectors = make([][]float64, len(tokenLists))
	for i, tokens := range tokenLists {
		vectors[i] = Vectorize(tokens, vocabulary, idf)
	}
	return docFreq, idf, vectors
}

// Vectorize projects a normalized token sequence into an existing
// vocabulary and returns a dense, L2-normalized tf-idf vector. Tokens
// outside the vocabulary contribute zero weight and never extend it, so
// queries with unseen terms degrade gracefully. A sequence with no known
// terms yields the zero vector.
func Vectorize(tokens []string, vocabulary map[string]int, idf []float64) []float64 {
	vector := make([]float64, len(idf))
	for _, token := range tokens {
		if column, ok := vocabulary[token]; ok {
			vector[column]++
		}
	}

	var sumSquares float64
	for column := range vector {
		if vector[column] == 0 {
			continue
		}
		vector[column] *= idf[column]
		sumSquares += vector[column] * vector[column]
	}

	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for column := range vector {
			vector[column] /= norm
		}
	}
	return vector
}
