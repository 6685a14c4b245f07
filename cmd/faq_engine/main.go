package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gcbaptista/go-faq-engine/api"
	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/internal/cache"
	"github.com/gcbaptista/go-faq-engine/internal/engine"
	"github.com/gcbaptista/go-faq-engine/internal/faqdata"
	"github.com/gcbaptista/go-faq-engine/model"
)

const defaultIndexName = "college"

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "", "Port to run the server on (default $PORT or 8080)")
		dataDir = flag.String("data-dir", "./faq_data", "Directory to store index data")
		faqFile = flag.String("faq-file", "", "JSON file with the FAQ corpus for the default index (built-in corpus when empty)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go FAQ Engine - TF-IDF question matching over FAQ corpora\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --faq-file ./faqs.json     # Seed the default index from a file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go FAQ Engine v1.0.0\n")
		fmt.Printf("TF-IDF matching with per-index thresholds, stats, and answer caching\n")
		return
	}

	// Environment variables supplement flags; a .env file is optional.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	serverPort := *port
	if serverPort == "" {
		serverPort = os.Getenv("PORT")
	}
	if serverPort == "" {
		serverPort = "8080"
	}

	// Initialize the FAQ engine
	log.Printf("Using data directory: %s", *dataDir)
	faqEngine := engine.NewEngine(*dataDir)

	if len(faqEngine.ListIndexes()) == 0 {
		if err := seedDefaultIndex(faqEngine, *faqFile); err != nil {
			log.Fatalf("Failed to seed default index: %v", err)
		}
	}

	answerCache := setupAnswerCache()

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, faqEngine, answerCache)

	// Start the server
	log.Printf("Starting server on port %s...", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedDefaultIndex builds the initial index on first boot, from a corpus
// file when one is given and from the built-in college corpus otherwise.
func seedDefaultIndex(faqEngine *engine.Engine, faqFile string) error {
	var faqs []model.FAQ
	var err error

	if faqFile != "" {
		log.Printf("Loading FAQ corpus from %s", faqFile)
		faqs, err = faqdata.LoadFile(faqFile)
		if err != nil {
			return err
		}
	} else {
		faqs = faqdata.DefaultFAQs()
	}

	settings := config.MatcherSettings{Name: defaultIndexName}
	if raw := os.Getenv("FAQ_ENGINE_THRESHOLD"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("Warning: Invalid FAQ_ENGINE_THRESHOLD %q, using default", raw)
		} else {
			settings.ConfidenceThreshold = parsed
		}
	}
	settings.ApplyDefaults()
	return faqEngine.CreateIndex(settings, faqs)
}

// setupAnswerCache wires the redis answer cache when REDIS_ADDR is set.
// The cache is strictly optional; connection failures log a warning and
// the server runs uncached.
func setupAnswerCache() *cache.AnswerCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Warning: Invalid REDIS_DB %q, using 0", raw)
		} else {
			db = parsed
		}
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("REDIS_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("Warning: Invalid REDIS_TTL %q, using %s", raw, ttl)
		} else {
			ttl = parsed
		}
	}

	answerCache, err := cache.New(addr, os.Getenv("REDIS_PASSWORD"), db, ttl)
	if err != nil {
		log.Printf("Warning: Answer cache disabled: %v", err)
		return nil
	}
	log.Printf("Answer cache enabled (redis at %s, ttl %s)", addr, ttl)
	return answerCache
}
