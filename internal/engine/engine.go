package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/index"
	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
	"github.com/gcbaptista/go-faq-engine/internal/matcher"
	"github.com/gcbaptista/go-faq-engine/internal/persistence"
	"github.com/gcbaptista/go-faq-engine/internal/vectorizer"
	"github.com/gcbaptista/go-faq-engine/model"
	"github.com/gcbaptista/go-faq-engine/services"
	"github.com/gcbaptista/go-faq-engine/store"
)

const (
	dataDirPerm     = 0755
	settingsFile    = "settings.gob"
	faqStoreFile    = "faq_store.gob"
	vectorIndexFile = "vector_index.gob"
)

// Engine manages multiple FAQ indices (e.g., one per department).
// It implements the services.IndexManager interface. Indices are built
// whole at creation time; there is no incremental mutation, so the only
// state the engine guards is its own name-to-instance map.
type Engine struct {
	mu      sync.RWMutex
	indexes map[string]*IndexInstance
	dataDir string
}

// NewEngine creates a new FAQ engine orchestrator and loads any indices
// previously persisted under dataDir.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		indexes: make(map[string]*IndexInstance),
		dataDir: dataDir,
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new indexes if loading fails.", dataDir, err)
	}
	eng.loadIndexesFromDisk()
	return eng
}

func (e *Engine) loadIndexesFromDisk() {
	log.Printf("Loading indexes from disk: %s", e.dataDir)
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No indexes loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		indexName := item.Name()
		indexPath := filepath.Join(e.dataDir, indexName)
		log.Printf("Attempting to load index: %s", indexName)

		var settings config.MatcherSettings
		settingsPath := filepath.Join(indexPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for index %s from %s: %v. Skipping this index.", indexName, settingsPath, err)
			continue
		}

		// Basic validation, settings name should match directory name
		if settings.Name != indexName {
			log.Printf("Warning: Index name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this index.", settings.Name, indexName, indexPath)
			continue
		}

		faqStore := &store.FAQStore{}
		fsPath := filepath.Join(indexPath, faqStoreFile)
		if err := persistence.LoadGob(fsPath, faqStore); err != nil {
			log.Printf("Warning: Failed to load FAQ store for index %s from %s: %v. Skipping this index.", indexName, fsPath, err)
			continue
		}
		if faqStore.Len() == 0 {
			log.Printf("Warning: FAQ store for index %s is empty. Skipping this index.", indexName)
			continue
		}

		vectorIndex := &index.VectorIndex{Settings: &settings}
		viPath := filepath.Join(indexPath, vectorIndexFile)
		if err := persistence.LoadGob(viPath, vectorIndex); err != nil {
			// The numeric index is derived state: rebuild it from the
			// corpus snapshot when the file is missing or unreadable.
			log.Printf("Info: Vector index for %s not loadable from %s (%v). Rebuilding from FAQ store.", indexName, viPath, err)
			rebuilt, buildErr := vectorizer.Build(faqStore.Entries, &settings)
			if buildErr != nil {
				log.Printf("Error rebuilding vector index for %s: %v. Skipping.", indexName, buildErr)
				continue
			}
			vectorIndex = rebuilt
		}

		matcherService, err := matcher.NewService(vectorIndex, faqStore, &settings)
		if err != nil {
			log.Printf("Error creating matcher service for loaded index %s: %v. Skipping.", indexName, err)
			continue
		}

		instance := &IndexInstance{
			settings:    &settings,
			VectorIndex: vectorIndex,
			FAQStore:    faqStore,
			matcher:     matcherService,
		}

		e.indexes[indexName] = instance
		log.Printf("Successfully loaded index: %s (%d FAQs, %d terms)", indexName, faqStore.Len(), vectorIndex.TermCount())
	}
}

// CreateIndex builds a new index over the given corpus and persists it.
// Fails with EmptyCorpusError when the corpus has zero entries and with
// IndexAlreadyExistsError on a name collision.
func (e *Engine) CreateIndex(settings config.MatcherSettings, faqs []model.FAQ) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if settings.Name == "" {
		return internalErrors.NewValidationError("name", "index name cannot be empty")
	}
	if _, exists := e.indexes[settings.Name]; exists {
		return internalErrors.NewIndexAlreadyExistsError(settings.Name)
	}

	settings.ApplyDefaults()

	instance, err := NewIndexInstance(settings, faqs)
	if err != nil {
		return fmt.Errorf("failed to create new index instance for '%s': %w", settings.Name, err)
	}

	// Persist the built state
	indexPath := filepath.Join(e.dataDir, settings.Name)
	if err := os.MkdirAll(indexPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for index %s: %w", settings.Name, err)
	}

	if err := persistence.SaveGob(filepath.Join(indexPath, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for index %s: %w", settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, faqStoreFile), instance.FAQStore); err != nil {
		return fmt.Errorf("failed to save FAQ store for index %s: %w", settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, vectorIndexFile), instance.VectorIndex); err != nil {
		return fmt.Errorf("failed to save vector index for %s: %w", settings.Name, err)
	}

	e.indexes[settings.Name] = instance
	log.Printf("Index '%s' created over %d FAQs and persisted.", settings.Name, len(faqs))
	return nil
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, internalErrors.NewIndexNotFoundError(name)
	}
	return instance, nil
}

// GetIndexSettings retrieves the settings for a specific index.
func (e *Engine) GetIndexSettings(name string) (config.MatcherSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return config.MatcherSettings{}, internalErrors.NewIndexNotFoundError(name)
	}
	return *instance.settings, nil // Return a copy
}

// DeleteIndex removes an index by its name from memory and disk.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		// To be idempotent, if not in memory, check if it exists on disk to remove
		indexPath := filepath.Join(e.dataDir, name)
		if _, err := os.Stat(indexPath); os.IsNotExist(err) {
			return internalErrors.NewIndexNotFoundError(name)
		}
	} else {
		delete(e.indexes, name)
	}

	indexPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(indexPath); err != nil {
		return fmt.Errorf("failed to delete index data directory %s: %w", indexPath, err)
	}
	log.Printf("Index '%s' deleted from memory and disk.", name)
	return nil
}

// ListIndexes returns a list of names of all existing indexes.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	return names
}
