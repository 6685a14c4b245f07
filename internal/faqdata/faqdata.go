// Package faqdata supplies FAQ corpora to the engine: a JSON file
// loader and the built-in college FAQ set the service ships with. The
// core is agnostic to where entries come from; this package is the only
// place that knows about storage formats.
package faqdata

import (
	"encoding/json"
	"fmt"
	"os"

	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
	"github.com/gcbaptista/go-faq-engine/model"
)

// LoadFile reads an ordered FAQ corpus from a JSON array file of
// {question, answer, category} objects.
func LoadFile(path string) ([]model.FAQ, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from a command-line flag
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file %s: %w", path, err)
	}

	var faqs []model.FAQ
	if err := json.Unmarshal(data, &faqs); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file %s: %w", path, err)
	}

	for i, faq := range faqs {
		if faq.Question == "" {
			return nil, internalErrors.NewValidationError(fmt.Sprintf("faqs[%d].question", i), "question cannot be empty")
		}
		if faq.Answer == "" {
			return nil, internalErrors.NewValidationError(fmt.Sprintf("faqs[%d].answer", i), "answer cannot be empty")
		}
	}
	return faqs, nil
}

// DefaultFAQs returns the built-in college FAQ corpus used when no FAQ
// file is supplied. Order matters: it defines each entry's identity.
func DefaultFAQs() []model.FAQ {
	return []model.FAQ{
		{Question: "What are the class timings?", Answer: "Classes run from 9 AM to 4:30 PM, Monday to Friday.", Category: "academics"},
		{Question: "What is the admission fee?", Answer: "The admission fee is ₹50,000 per year.", Category: "admissions"},
		{Question: "How do I apply for admission?", Answer: "Fill the online application form on the college website and upload your mark sheets.", Category: "admissions"},
		{Question: "What documents are required for admission?", Answer: "You need your 10th and 12th mark sheets, transfer certificate, and a passport-size photo.", Category: "admissions"},
		{Question: "Is there a hostel facility?", Answer: "Yes, separate hostels are available for boys and girls with mess facilities.", Category: "campus"},
		{Question: "What is the hostel fee?", Answer: "The hostel fee is ₹60,000 per year including mess charges.", Category: "campus"},
		{Question: "What are the library hours?", Answer: "The library is open from 8 AM to 8 PM on working days.", Category: "campus"},
		{Question: "Does the college provide placements?", Answer: "Yes, the placement cell invites companies every year; last year 94% of final-year students were placed.", Category: "placements"},
		{Question: "Which companies visit for placements?", Answer: "TCS, Infosys, Wipro, Accenture, and several startups recruit on campus.", Category: "placements"},
		{Question: "What courses are offered?", Answer: "We offer B.Tech, B.Sc, B.Com, BBA, and MBA programs.", Category: "academics"},
		{Question: "Are scholarships available?", Answer: "Merit scholarships cover up to 50% of tuition for the top 10% of each batch.", Category: "admissions"},
		{Question: "Is there a sports facility?", Answer: "The campus has a gym, cricket ground, basketball court, and indoor games room.", Category: "campus"},
		{Question: "Where is the college located?", Answer: "The campus is on College Road, 5 km from the central railway station.", Category: "general"},
		{Question: "How can I contact the college office?", Answer: "Call +91-1234-567890 or email office@college.edu between 9 AM and 5 PM.", Category: "general"},
		{Question: "Is WiFi available on campus?", Answer: "High-speed WiFi is available across the campus including hostels.", Category: "campus"},
	}
}
