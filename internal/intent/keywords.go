package intent

import "strings"

// Vocabulary lists are fixed for the process lifetime. Ordered by how often
// patients actually use the term; order only matters for which duplicate
// lands first in the extractor output.
var (
	productVocabulary = []string{
		"medicine", "medicines", "drug", "drugs", "tablet", "tablets",
		"capsule", "capsules", "syrup", "paracetamol", "ibuprofen", "aspirin",
		"antibiotic", "antibiotics", "painkiller", "painkillers", "vitamin",
		"vitamins", "supplement", "supplements", "cream", "ointment",
		"inhaler", "injection", "pharmacy", "product", "products",
	}
	doctorVocabulary = []string{
		"doctor", "doctors", "physician", "specialist", "specialists",
		"cardiologist", "dermatologist", "pediatrician", "gynecologist",
		"neurologist", "psychiatrist", "dentist", "optometrist",
		"orthopedist", "surgeon", "therapist", "consultant", "clinic",
	}
	orderVocabulary = []string{
		"order", "orders", "checkout", "buy", "purchase", "delivery",
		"deliver",
	}
	appointmentVocabulary = []string{
		"appointment", "appointments", "book", "booking", "schedule",
		"reschedule", "consultation", "visit",
	}
	trackingVocabulary = []string{
		"track", "tracking", "status", "shipment", "shipped", "dispatch",
		"courier",
	}
)

// keywordThreshold gates fuzzy token matches against the vocabularies.
const keywordThreshold = 0.75

// Keywords groups message tokens by the vocabulary category they resemble.
// Entries hold the original token, not the vocabulary word it matched, and
// duplicates are preserved: a token resembling two words in one category
// appears twice.
type Keywords struct {
	Products     []string
	Doctors      []string
	Orders       []string
	Appointments []string
	Tracking     []string
}

// minKeywordLen keeps filler tokens out of the scan. One- and two-letter
// tokens match almost any vocabulary word by containment ("medicine"
// contains "i"), which would route every sentence to the first category.
const minKeywordLen = 3

// ExtractKeywords scans whitespace-split tokens of the lowercased text
// against all five vocabularies. A token may land in several categories.
// This is the fallback path for messages no cascade rule claimed.
func ExtractKeywords(text string) Keywords {
	tokens := strings.Fields(strings.ToLower(text))

	var kw Keywords
	for _, tok := range tokens {
		if len(tok) < minKeywordLen {
			continue
		}
		kw.Products = appendVocabularyMatches(kw.Products, tok, productVocabulary)
		kw.Doctors = appendVocabularyMatches(kw.Doctors, tok, doctorVocabulary)
		kw.Orders = appendVocabularyMatches(kw.Orders, tok, orderVocabulary)
		kw.Appointments = appendVocabularyMatches(kw.Appointments, tok, appointmentVocabulary)
		kw.Tracking = appendVocabularyMatches(kw.Tracking, tok, trackingVocabulary)
	}
	return kw
}

func appendVocabularyMatches(dst []string, token string, vocabulary []string) []string {
	for _, word := range vocabulary {
		if Similarity(token, word, keywordThreshold) > 0 {
			dst = append(dst, token)
		}
	}
	return dst
}
