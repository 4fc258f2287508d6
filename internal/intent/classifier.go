package intent

import (
	"regexp"
	"strings"

	"github.com/healthplug/pharmabot/pkg/logging"
)

// request carries the per-message views the cascade predicates share.
type request struct {
	raw         string   // trimmed, case preserved
	lower       string
	tokens      []string // whitespace split of lower
	cleanTokens []string // tokens with surrounding punctuation stripped
}

// rule pairs a predicate with its handler. The cascade is evaluated top to
// bottom and the first predicate that matches wins; order is a correctness
// contract, not a style choice. Doctor search sits above product search so
// "find a doctor" can never be captured as a product query.
type rule struct {
	name   string
	match  func(*request) bool
	handle func(*request) Result
}

// Command-word keyword sets and their fuzzy thresholds.
var (
	helpKeywords     = []string{"help", "menu", "options", "commands"}
	logoutKeywords   = []string{"logout", "log out", "signout", "sign out"}
	greetingKeywords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "start"}
)

const (
	helpThreshold     = 0.85
	logoutThreshold   = 0.80
	greetingThreshold = 0.80
)

var (
	registerRE       = regexp.MustCompile(`(?i)^(register|signup|sign\s*up|create\s+account)\b`)
	loginRE          = regexp.MustCompile(`(?i)^(login|log\s*in|signin|sign\s*in)\b`)
	productSearchRE  = regexp.MustCompile(`(?i)\b(buy|purchase|shop\s+for|looking\s+for|search(?:\s+for)?)\b`)
	addToCartRE      = regexp.MustCompile(`(?i)^add\b|\b(add|put|move)\b.+\b(cart|basket)\b`)
	placeOrderRE     = regexp.MustCompile(`(?i)\b(place|confirm|complete)\b.*\border\b|\bcheck\s*out\b|^order\s+now\b|^order$`)
	trackOrderRE     = regexp.MustCompile(`(?i)\btrack\b|\bwhere\s+is\s+my\s+order\b|\border\s+status\b`)
	appointmentRE    = regexp.MustCompile(`(?i)\bappointments?\b|\b(book|schedule)\b.*\b(doctor|visit|checkup)\b`)
	paymentRE        = regexp.MustCompile(`(?i)\bpay(?:ment|ing)?\b`)
	supportRE        = regexp.MustCompile(`(?i)\bsupport\b|\bagent\b|\bhuman\b|\brepresentative\b|\bcustomer\s+(care|service)\b|\btalk\s+to\s+(someone|a\s+person)\b|\bcomplaints?\b`)
	diagnosticRE     = regexp.MustCompile(`(?i)^(book\s+(a\s+)?(lab\s+)?tests?|lab\s+tests?|diagnostics?|run\s+a\s+test|test\s+for)\b`)
	healthcareRE     = regexp.MustCompile(`(?i)^(healthcare|health\s+products?|wellness)\b`)
	passwordResetRE  = regexp.MustCompile(`(?i)\b(forgot|reset|change)\b.*\bpassword\b`)
	prescriptionRE   = regexp.MustCompile(`(?i)\bprescriptions?\b|\bupload\b`)
	viewCartPhrases  = []string{"cart", "my cart", "view cart", "show cart", "open cart", "view my cart", "show my cart", "what's in my cart"}
)

// broadFallbacks is the secondary regex net behind the keyword extractor,
// tried in the same category-priority order.
var broadFallbacks = []struct {
	re     *regexp.Regexp
	intent string
}{
	{regexp.MustCompile(`(?i)\b(sick|unwell|ill|symptoms?|pain|ache)\b`), IntentSearchDoctors},
	{regexp.MustCompile(`(?i)\b(meds?|pills?|tabs?|refill)\b`), IntentSearchProducts},
	{regexp.MustCompile(`(?i)\b(slot|available|availability|free\s+time)\b`), IntentBookAppointment},
	{regexp.MustCompile(`(?i)\b(ordered|bought|basket)\b`), IntentPlaceOrder},
	{regexp.MustCompile(`(?i)\b(arriv(?:e|ed|ing)|shipping|delivered)\b`), IntentTrackOrder},
}

// Options configures an Engine. The order-ID functions are supplied by the
// commerce layer; the engine treats whatever they return as opaque.
type Options struct {
	ParseOrderID   func(text string) (orderID string, ok bool)
	IsValidOrderID func(id string) bool
	Logger         *logging.Logger
}

// Engine classifies chat messages against the fixed rule cascade. It holds
// no per-message state and is safe for concurrent use across senders.
type Engine struct {
	parseOrderID func(string) (string, bool)
	validOrderID func(string) bool
	logger       *logging.Logger
	cascade      []rule
}

// NewEngine builds the engine and its cascade.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		parseOrderID: opts.ParseOrderID,
		validOrderID: opts.IsValidOrderID,
		logger:       opts.Logger,
	}
	if e.logger == nil {
		e.logger = logging.Default()
	}

	e.cascade = []rule{
		{"feature-command", matchFeatureCommand, handleFeatureCommand},
		{"help", func(r *request) bool { return matchesCommand(r, helpKeywords, helpThreshold) },
			func(r *request) Result { return compose(IntentHelp, nil, "", SourceCustomNLP) }},
		{"logout", func(r *request) bool { return matchesCommand(r, logoutKeywords, logoutThreshold) },
			func(r *request) Result { return compose(IntentLogout, nil, "", SourceCustomNLP) }},
		{"greeting", func(r *request) bool { return matchesCommand(r, greetingKeywords, greetingThreshold) },
			func(r *request) Result { return compose(IntentGreeting, nil, "", SourceCustomNLP) }},
		{"register", func(r *request) bool { return registerRE.MatchString(r.lower) },
			func(r *request) Result { return compose(IntentRegister, extractCredentials(r.raw), "", SourceCustomNLP) }},
		{"login", func(r *request) bool { return loginRE.MatchString(r.lower) },
			func(r *request) Result { return compose(IntentLogin, extractCredentials(r.raw), "", SourceCustomNLP) }},
		// Doctors strictly before products: specialty words carry no product
		// vocabulary, so a reordering here silently reroutes "find a doctor".
		{"search-doctors", matchDoctorSearch,
			func(r *request) Result { return compose(IntentSearchDoctors, extractDoctorSearch(r.raw), "", SourceCustomNLP) }},
		{"search-products", matchProductSearch,
			func(r *request) Result { return compose(IntentSearchProducts, extractProductQuery(r.raw), "", SourceCustomNLP) }},
		{"add-to-cart", func(r *request) bool { return addToCartRE.MatchString(r.lower) },
			func(r *request) Result { return compose(IntentAddToCart, extractCartItem(r.raw), "", SourceCustomNLP) }},
		{"place-order", func(r *request) bool { return placeOrderRE.MatchString(r.lower) },
			func(r *request) Result { return compose(IntentPlaceOrder, extractOrderPlacement(r.raw), "", SourceCustomNLP) }},
		{"track-order", func(r *request) bool { return trackOrderRE.MatchString(r.lower) || r.raw == "3" },
			func(r *request) Result { return compose(IntentTrackOrder, e.orderRef(r.raw), "", SourceCustomNLP) }},
		{"book-appointment", func(r *request) bool { return appointmentRE.MatchString(r.lower) || r.raw == "4" },
			func(r *request) Result { return compose(IntentBookAppointment, extractAppointment(r.raw), "", SourceCustomNLP) }},
		{"payment", func(r *request) bool { return paymentRE.MatchString(r.lower) },
			func(r *request) Result { return compose(IntentPayment, e.orderRef(r.raw), "", SourceCustomNLP) }},
		{"view-cart", matchViewCart,
			func(r *request) Result { return compose(IntentViewCart, nil, "", SourceCustomNLP) }},
		{"support", func(r *request) bool { return supportRE.MatchString(r.lower) || r.raw == "6" },
			func(r *request) Result { return compose(IntentSupport, nil, "", SourceCustomNLP) }},
		{"diagnostic-tests", matchDiagnosticTests,
			func(r *request) Result {
				return compose(IntentDiagnosticTests, DiagnosticTest{Name: extractVocabularyItem(r.raw, diagnosticTests)}, "", SourceCustomNLP)
			}},
		{"healthcare-products", matchHealthcareProducts,
			func(r *request) Result {
				return compose(IntentHealthcareProducts, HealthcareItem{Name: extractVocabularyItem(r.raw, healthcareItems)}, "", SourceCustomNLP)
			}},
		{"password-reset", func(r *request) bool { return passwordResetRE.MatchString(r.lower) },
			handlePasswordReset},
		{"prescription-upload", func(r *request) bool { return prescriptionRE.MatchString(r.lower) || r.raw == "7" },
			func(r *request) Result { return compose(IntentPrescriptionUpload, nil, "", SourceCustomNLP) }},
		{"fallback", func(r *request) bool { return true }, e.handleFallback},
	}
	return e
}

// Classify routes one message to an intent. It never panics and never
// returns a Go error: faults resolve to an error-intent result, empty input
// to unknown. Classification reads the session view only; marker transitions
// belong to the calling dialogue manager.
func (e *Engine) Classify(text, senderID string, view SessionView) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("classification fault",
				"sender_id", senderID,
				"panic", r,
			)
			res = compose(IntentError, nil, "", SourceError)
		}
	}()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return compose(IntentUnknown, nil, "", SourceCustomNLP)
	}

	if guarded, ok := guardPagination(trimmed, view); ok {
		return guarded
	}

	req := newRequest(trimmed)
	for _, rl := range e.cascade {
		if rl.match(req) {
			return rl.handle(req)
		}
	}
	// Unreachable: the fallback rule always matches.
	return compose(IntentUnknown, nil, "", SourceCustomNLP)
}

func newRequest(trimmed string) *request {
	lower := strings.ToLower(trimmed)
	tokens := strings.Fields(lower)
	clean := make([]string, len(tokens))
	for i, tok := range tokens {
		clean[i] = strings.Trim(tok, `.,!?;:'"()`)
	}
	return &request{raw: trimmed, lower: lower, tokens: tokens, cleanTokens: clean}
}

// ---------- predicates ----------

func matchFeatureCommand(r *request) bool {
	if !digitsOnlyRE.MatchString(r.raw) {
		return false
	}
	_, ok := FeatureCommands[r.raw]
	return ok
}

func handleFeatureCommand(r *request) Result {
	cmd := FeatureCommands[r.raw]
	return compose(cmd.Intent, nil, "", SourceNumeric)
}

// matchesCommand checks command words against cleaned tokens: exact, or an
// edit-distance ratio at or above the threshold. Multi-word keywords are
// matched as substrings of the whole message.
func matchesCommand(r *request, keywords []string, threshold float64) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(r.lower, kw) {
				return true
			}
			continue
		}
		for _, tok := range r.cleanTokens {
			if tok == kw || keywordScore(tok, kw) >= threshold {
				return true
			}
		}
	}
	return false
}

func matchDoctorSearch(r *request) bool {
	if containsAnyWord(r, doctorVocabulary) {
		return true
	}
	for _, specialty := range specialties {
		if strings.Contains(r.lower, specialty) {
			return true
		}
	}
	return false
}

// matchProductSearch is deliberately verb-driven. Matching bare product
// vocabulary here would steal "add paracetamol qty 2" from the cart rule
// below; bare product mentions are the fallback extractor's job.
func matchProductSearch(r *request) bool {
	return productSearchRE.MatchString(r.lower)
}

func matchViewCart(r *request) bool {
	if r.raw == "5" {
		return true
	}
	phrase := strings.Trim(r.lower, `.,!?;:'"`)
	for _, p := range viewCartPhrases {
		if phrase == p {
			return true
		}
	}
	return false
}

func matchDiagnosticTests(r *request) bool {
	if diagnosticRE.MatchString(r.lower) {
		return true
	}
	for _, test := range diagnosticTests {
		if strings.Contains(r.lower, test) {
			return true
		}
	}
	return false
}

func matchHealthcareProducts(r *request) bool {
	if healthcareRE.MatchString(r.lower) || r.raw == "8" {
		return true
	}
	for _, item := range healthcareItems {
		if strings.Contains(r.lower, item) {
			return true
		}
	}
	return false
}

// containsAnyWord matches single vocabulary words against cleaned tokens and
// multi-word entries against the whole message.
func containsAnyWord(r *request, words []string) bool {
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(r.lower, w) {
				return true
			}
			continue
		}
		for _, tok := range r.cleanTokens {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// ---------- handlers needing engine state ----------

func (e *Engine) orderRef(raw string) OrderRef {
	if e.parseOrderID == nil {
		return OrderRef{}
	}
	id, ok := e.parseOrderID(raw)
	if !ok {
		return OrderRef{}
	}
	if e.validOrderID != nil && !e.validOrderID(id) {
		return OrderRef{}
	}
	return OrderRef{OrderID: id}
}

func handlePasswordReset(r *request) Result {
	email := extractEmail(r.raw)
	text := "Please reply with the email linked to your account so we can reset your password."
	if email != "" {
		text = "We've sent a password reset link to " + email + ". It expires in 30 minutes."
	}
	return compose(IntentPasswordReset, EmailParam{Email: email}, text, SourceCustomNLP)
}

// handleFallback runs the keyword extractor in category-priority order
// (doctors > products > appointments > orders > tracking), then the broad
// regex net, then gives up.
func (e *Engine) handleFallback(r *request) Result {
	kw := ExtractKeywords(r.raw)
	switch {
	case len(kw.Doctors) > 0:
		return compose(IntentSearchDoctors, extractDoctorSearch(r.raw), "", SourceCustomNLP)
	case len(kw.Products) > 0:
		return compose(IntentSearchProducts, extractProductQuery(r.raw), "", SourceCustomNLP)
	case len(kw.Appointments) > 0:
		return compose(IntentBookAppointment, extractAppointment(r.raw), "", SourceCustomNLP)
	case len(kw.Orders) > 0:
		return compose(IntentPlaceOrder, extractOrderPlacement(r.raw), "", SourceCustomNLP)
	case len(kw.Tracking) > 0:
		return compose(IntentTrackOrder, e.orderRef(r.raw), "", SourceCustomNLP)
	}

	for _, fb := range broadFallbacks {
		if fb.re.MatchString(r.raw) {
			return compose(fb.intent, nil, "", SourceCustomNLP)
		}
	}
	return compose(IntentUnknown, nil, "", SourceCustomNLP)
}
