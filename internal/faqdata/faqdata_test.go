package faqdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
)

func writeTempFAQFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faqs.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp FAQ file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTempFAQFile(t, `[
		{"question": "What are the class timings?", "answer": "9 AM to 4:30 PM", "category": "academics"},
		{"question": "What is the admission fee?", "answer": "₹50,000 per year"}
	]`)

	faqs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(faqs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(faqs))
	}
	if faqs[0].Question != "What are the class timings?" {
		t.Errorf("unexpected first question: %q", faqs[0].Question)
	}
	if faqs[0].Category != "academics" {
		t.Errorf("unexpected category: %q", faqs[0].Category)
	}
	if faqs[1].Category != "" {
		t.Errorf("category should be optional, got %q", faqs[1].Category)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := writeTempFAQFile(t, `{"not": "an array"}`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestLoadFile_EmptyQuestion(t *testing.T) {
	path := writeTempFAQFile(t, `[{"question": "", "answer": "something"}]`)
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected validation error for empty question")
	}
	if !errors.Is(err, internalErrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadFile_EmptyAnswer(t *testing.T) {
	path := writeTempFAQFile(t, `[{"question": "Why?", "answer": ""}]`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for empty answer")
	}
}

func TestDefaultFAQs(t *testing.T) {
	faqs := DefaultFAQs()
	if len(faqs) == 0 {
		t.Fatal("expected a non-empty built-in corpus")
	}
	seen := make(map[string]bool, len(faqs))
	for i, faq := range faqs {
		if faq.Question == "" || faq.Answer == "" {
			t.Errorf("entry %d has an empty question or answer", i)
		}
		if seen[faq.Question] {
			t.Errorf("duplicate question %q", faq.Question)
		}
		seen[faq.Question] = true
	}
}
