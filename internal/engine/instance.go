package engine

import (
	"fmt"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/index"
	"github.com/gcbaptista/go-faq-engine/internal/matcher"
	"github.com/gcbaptista/go-faq-engine/internal/vectorizer"
	"github.com/gcbaptista/go-faq-engine/model"
	"github.com/gcbaptista/go-faq-engine/services"
	"github.com/gcbaptista/go-faq-engine/store"
)

// IndexInstance holds all components for a single FAQ index: the corpus
// snapshot, its numeric representation, and the matcher bound to both.
// It implements the services.IndexAccessor interface. Everything inside
// is read-only after construction.
type IndexInstance struct {
	settings    *config.MatcherSettings
	VectorIndex *index.VectorIndex
	FAQStore    *store.FAQStore
	matcher     *matcher.Service
}

// NewIndexInstance builds the numeric index for the given corpus and
// wires up the matcher. It fails on an empty corpus (EmptyCorpusError
// surfaces from the vectorizer).
func NewIndexInstance(settings config.MatcherSettings, faqs []model.FAQ) (*IndexInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("index name cannot be empty in settings")
	}

	vectorIndex, err := vectorizer.Build(faqs, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to build vector index for '%s': %w", settings.Name, err)
	}

	faqStore := &store.FAQStore{Entries: faqs}

	matcherService, err := matcher.NewService(vectorIndex, faqStore, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher service: %w", err)
	}

	return &IndexInstance{
		settings:    &settings,
		VectorIndex: vectorIndex,
		FAQStore:    faqStore,
		matcher:     matcherService,
	}, nil
}

// Match delegates to the underlying matcher service.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Match(query services.MatchQuery) (services.MatchResult, error) {
	if i.matcher == nil {
		return services.MatchResult{}, fmt.Errorf("matcher service not initialized for index '%s'", i.settings.Name)
	}
	return i.matcher.Match(query)
}

// Rank delegates to the underlying matcher service.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Rank(query string) ([]services.Candidate, error) {
	if i.matcher == nil {
		return nil, fmt.Errorf("matcher service not initialized for index '%s'", i.settings.Name)
	}
	return i.matcher.Rank(query)
}

// FAQs returns a copy of the corpus this index was built from.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) FAQs() []model.FAQ {
	return i.FAQStore.All()
}

// Settings returns the configuration settings for this index.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Settings() config.MatcherSettings {
	return *i.settings
}
