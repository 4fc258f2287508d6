package intent

import (
	"regexp"
	"strings"
)

// Entity extractors operate on the raw message (case preserved where names
// matter) and are total: missing data omits the parameter key, it never
// fails the classification.

var (
	emailRE = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	credentialPrefixRE = regexp.MustCompile(`(?i)^(register|signup|sign\s*up|create\s+account|login|log\s*in|signin|sign\s*in)\b[:,]?\s*`)

	productVerbPrefixRE = regexp.MustCompile(`(?i)^(i\s+(?:want|need|would\s+like)\s+to\s+|i(?:'m|\s+am)\s+looking\s+for\s+|please\s+)?(buy|purchase|find|search(?:\s+for)?|get|need|order|show\s+me|looking\s+for|look\s+for)\s+`)
	articlePrefixRE     = regexp.MustCompile(`(?i)^(a|an|the|some)\s+`)

	cartNameQtyRE = regexp.MustCompile(`(?i)^add\s+(.+?)\s+(?:qty|quantity|x)\s*(\d+)\s*$`)
	cartIdxQtyRE  = regexp.MustCompile(`(?i)^add\s+(\d+)\s+(\d+)\s*$`)
	cartIdxRE     = regexp.MustCompile(`(?i)^add\s+(\d+)\s*$`)
	cartTailRE    = regexp.MustCompile(`(?i)\s+(?:to|into)\s+(?:my\s+)?(?:cart|basket)\s*$`)

	addressRE = regexp.MustCompile(`(?i)(?:deliver(?:y)?\s+to|ship\s+to|to|at)\s+([^,]+),`)

	locationRE = regexp.MustCompile(`(?i)\bin\s+([^,.!?]+)`)

	isoDateRE   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	slashDateRE = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	clockTimeRE = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}\s*(?:am|pm)?)\b`)
)

// specialties is the fixed doctor-specialty vocabulary for parameter capture.
var specialties = []string{
	"cardiologist", "dermatologist", "pediatrician", "gynecologist",
	"neurologist", "psychiatrist", "dentist", "optometrist", "orthopedist",
	"surgeon", "therapist", "general practitioner",
}

// genericProductTerms are category words stripped from a product query so
// "buy paracetamol tablets" yields just "paracetamol".
var genericProductTerms = map[string]bool{
	"medicine": true, "medicines": true, "drug": true, "drugs": true,
	"tablet": true, "tablets": true, "capsule": true, "capsules": true,
	"product": true, "products": true, "pharmacy": true,
}

// diagnosticTests is the fixed diagnostic-test vocabulary.
var diagnosticTests = []string{
	"blood test", "malaria test", "typhoid test", "covid test", "x-ray",
	"ultrasound", "ecg", "blood sugar", "lipid profile", "urinalysis",
}

// healthcareItems is the fixed healthcare-product vocabulary.
var healthcareItems = []string{
	"thermometer", "blood pressure monitor", "glucometer", "first aid kit",
	"face mask", "sanitizer", "wheelchair", "crutches", "nebulizer",
}

// extractCredentials pulls email, name, and password out of a register/login
// message: tokens before the email become the name, tokens after it the
// password.
func extractCredentials(raw string) Credentials {
	var creds Credentials

	text := credentialPrefixRE.ReplaceAllString(strings.TrimSpace(raw), "")
	loc := emailRE.FindStringIndex(text)
	if loc == nil {
		return creds
	}
	creds.Email = text[loc[0]:loc[1]]

	if before := strings.Fields(text[:loc[0]]); len(before) > 0 {
		creds.Name = strings.Join(before, " ")
	}
	if after := strings.Fields(text[loc[1]:]); len(after) > 0 {
		creds.Password = strings.Join(after, " ")
	}
	return creds
}

// extractProductQuery strips the leading search verb, articles, and generic
// category words, leaving a best-effort product name.
func extractProductQuery(raw string) ProductQuery {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = productVerbPrefixRE.ReplaceAllString(text, "")
	text = articlePrefixRE.ReplaceAllString(text, "")

	var kept []string
	for _, tok := range strings.Fields(text) {
		if genericProductTerms[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return ProductQuery{ProductName: strings.Join(kept, " ")}
}

// extractCartItem tries the three add-to-cart shapes in order: name plus
// quantity, index plus quantity, index only (quantity defaults to "1").
func extractCartItem(raw string) CartItem {
	text := cartTailRE.ReplaceAllString(strings.TrimSpace(raw), "")
	if m := cartNameQtyRE.FindStringSubmatch(text); m != nil {
		item := CartItem{Quantity: m[2]}
		name := strings.TrimSpace(m[1])
		if digitsOnlyRE.MatchString(name) {
			item.ProductIndex = name
		} else {
			item.ProductName = strings.ToLower(name)
		}
		return item
	}
	if m := cartIdxQtyRE.FindStringSubmatch(text); m != nil {
		return CartItem{ProductIndex: m[1], Quantity: m[2]}
	}
	if m := cartIdxRE.FindStringSubmatch(text); m != nil {
		return CartItem{ProductIndex: m[1], Quantity: "1"}
	}
	return CartItem{}
}

// extractOrderPlacement captures a best-effort delivery address (text before
// the first comma after a preposition) and a payment-method tag.
func extractOrderPlacement(raw string) OrderPlacement {
	var placement OrderPlacement

	if m := addressRE.FindStringSubmatch(raw); m != nil {
		placement.Address = strings.TrimSpace(m[1])
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "flutterwave"):
		placement.PaymentMethod = "flutterwave"
	case strings.Contains(lower, "paystack"):
		placement.PaymentMethod = "paystack"
	case strings.Contains(lower, "cash"):
		placement.PaymentMethod = "cash"
	}
	return placement
}

// extractDoctorSearch matches the specialty vocabulary by substring and pulls
// a location from an "in <place>" phrase.
func extractDoctorSearch(raw string) DoctorQuery {
	var query DoctorQuery

	lower := strings.ToLower(raw)
	for _, specialty := range specialties {
		if strings.Contains(lower, specialty) {
			query.Specialty = specialty
			break
		}
	}
	if m := locationRE.FindStringSubmatch(raw); m != nil {
		query.Location = strings.TrimSpace(m[1])
	}
	return query
}

// extractAppointment reads the first all-digit token as the doctor index,
// plus a date (YYYY-MM-DD or M/D/YYYY) and a clock time if present.
func extractAppointment(raw string) Appointment {
	var appt Appointment

	for _, tok := range strings.Fields(raw) {
		if digitsOnlyRE.MatchString(tok) {
			appt.DoctorIndex = tok
			break
		}
	}
	if m := isoDateRE.FindStringSubmatch(raw); m != nil {
		appt.Date = m[1]
	} else if m := slashDateRE.FindStringSubmatch(raw); m != nil {
		appt.Date = m[1]
	}
	if m := clockTimeRE.FindStringSubmatch(raw); m != nil {
		appt.Time = strings.ReplaceAll(strings.ToLower(m[1]), " ", "")
	}
	return appt
}

// extractVocabularyItem returns the first vocabulary entry contained in the
// message, or "".
func extractVocabularyItem(raw string, vocabulary []string) string {
	lower := strings.ToLower(raw)
	for _, item := range vocabulary {
		if strings.Contains(lower, item) {
			return item
		}
	}
	return ""
}

// extractEmail captures a lone email address, used by password reset.
func extractEmail(raw string) string {
	return emailRE.FindString(raw)
}
