package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/internal/faqdata"
	"github.com/gcbaptista/go-faq-engine/internal/matcher"
	"github.com/gcbaptista/go-faq-engine/internal/vectorizer"
	"github.com/gcbaptista/go-faq-engine/model"
	"github.com/gcbaptista/go-faq-engine/services"
	"github.com/gcbaptista/go-faq-engine/store"
)

const noMatchReply = "I couldn't find a matching answer. Please try rephrasing your question."

// faq_chat is a terminal chat client over the matcher core. It builds
// the index in-process and never touches the HTTP server or disk, which
// makes it handy for tuning a corpus and threshold before deploying.
func main() {
	var (
		help      = flag.Bool("help", false, "Show help message")
		faqFile   = flag.String("faq-file", "", "JSON file with the FAQ corpus (built-in corpus when empty)")
		threshold = flag.Float64("threshold", config.DefaultConfidenceThreshold, "Minimum similarity in [0,1] to accept a match")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Go FAQ Chat - interactive question matching against an FAQ corpus\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nType a question at the prompt; 'help' lists commands, 'exit' quits.\n")
		return
	}

	faqs, err := loadCorpus(*faqFile)
	if err != nil {
		log.Fatalf("Failed to load FAQ corpus: %v", err)
	}

	settings := config.MatcherSettings{Name: "chat", ConfidenceThreshold: *threshold}
	settings.ApplyDefaults()
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		log.Fatalf("Invalid settings: %s", strings.Join(conflicts, "; "))
	}

	vectorIndex, err := vectorizer.Build(faqs, &settings)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}
	faqStore := &store.FAQStore{Entries: faqs}
	matchService, err := matcher.NewService(vectorIndex, faqStore, &settings)
	if err != nil {
		log.Fatalf("Failed to create matcher: %v", err)
	}

	fmt.Printf("Loaded %d FAQs (%d terms). Ask a question, or type 'help'.\n", len(faqs), vectorIndex.TermCount())
	runChatLoop(matchService, faqs)
}

func loadCorpus(faqFile string) ([]model.FAQ, error) {
	if faqFile != "" {
		return faqdata.LoadFile(faqFile)
	}
	return faqdata.DefaultFAQs(), nil
}

func runChatLoop(matchService *matcher.Service, faqs []model.FAQ) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return
		case "help":
			fmt.Println("Commands:")
			fmt.Println("  help       show this message")
			fmt.Println("  questions  list the questions in the corpus")
			fmt.Println("  exit       quit the chat")
			continue
		case "questions":
			for _, faq := range faqs {
				fmt.Printf("  - %s\n", faq.Question)
			}
			continue
		}

		result, err := matchService.Match(services.MatchQuery{Query: line})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		if !result.Matched {
			fmt.Printf("bot> %s (best score %.0f%%)\n", noMatchReply, result.Score*100)
			continue
		}
		fmt.Printf("bot> %s\n", result.Answer)
		fmt.Printf("     (matched %q, confidence %.0f%%)\n", result.MatchedQuestion, result.Score*100)
	}
}
