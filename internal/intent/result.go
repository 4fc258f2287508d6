package intent

// Intent names emitted by the engine.
const (
	IntentUnknown             = "unknown"
	IntentError               = "error"
	IntentHelp                = "help"
	IntentLogout              = "logout"
	IntentGreeting            = "greeting"
	IntentRegister            = "register"
	IntentLogin               = "login"
	IntentSearchDoctors       = "search_doctors"
	IntentSearchProducts      = "search_products"
	IntentAddToCart           = "add_to_cart"
	IntentPlaceOrder          = "place_order"
	IntentTrackOrder          = "track_order"
	IntentBookAppointment     = "book_appointment"
	IntentPayment             = "payment"
	IntentViewCart            = "view_cart"
	IntentSupport             = "support"
	IntentDiagnosticTests     = "diagnostic_tests"
	IntentHealthcareProducts  = "healthcare_products"
	IntentPasswordReset       = "password_reset"
	IntentPrescriptionUpload  = "prescription_upload"
	IntentPaginationSelection = "pagination_selection"
)

// Source tags recorded on results so callers can tell authoritative
// classifications (menu digits, pagination context) from best-effort ones.
const (
	SourceNumeric           = "numeric"
	SourceNumericContext    = "numeric-context"
	SourcePaginationContext = "pagination-context"
	SourceCustomNLP         = "custom-nlp"
	SourceError             = "error"
)

// ClassifiedConfidence is reported on every result. The engine does no
// probabilistic scoring; the constant marks results as rule-derived rather
// than pretending at a computed likelihood.
const ClassifiedConfidence = 0.9

// Result is the engine's sole output.
type Result struct {
	Intent          string            `json:"intent"`
	Parameters      map[string]string `json:"parameters"`
	FulfillmentText string            `json:"fulfillment_text"`
	Confidence      float64           `json:"confidence"`
	Source          string            `json:"source"`
}

// FeatureCommand maps a single-digit menu shortcut to an intent.
type FeatureCommand struct {
	Intent string
	Label  string
}

// FeatureCommands is the fixed digit menu. Read-only; callers use it to
// render menu UI.
var FeatureCommands = map[string]FeatureCommand{
	"1": {Intent: IntentSearchProducts, Label: "Search medicines & products"},
	"2": {Intent: IntentSearchDoctors, Label: "Find a doctor"},
	"3": {Intent: IntentTrackOrder, Label: "Track an order"},
	"4": {Intent: IntentBookAppointment, Label: "Book an appointment"},
	"5": {Intent: IntentViewCart, Label: "View your cart"},
	"6": {Intent: IntentSupport, Label: "Talk to support"},
	"7": {Intent: IntentPrescriptionUpload, Label: "Upload a prescription"},
	"8": {Intent: IntentHealthcareProducts, Label: "Browse healthcare products"},
}

// HelpMessage is the menu text shown for the help intent. Exposed for
// callers building menu UI.
const HelpMessage = `Here's what I can help you with:

1. Search medicines & products
2. Find a doctor
3. Track an order
4. Book an appointment
5. View your cart
6. Talk to support
7. Upload a prescription
8. Browse healthcare products

Reply with a number or just tell me what you need.`

const unknownFulfillment = `Sorry, I didn't understand that. Type "help" to see everything I can do.`

const errorFulfillment = "Something went wrong on our side. Please try that again in a moment."

// defaultFulfillments supplies reply text when a rule handler returns none.
var defaultFulfillments = map[string]string{
	IntentHelp:                HelpMessage,
	IntentLogout:              "You've been logged out. Send any message to start again.",
	IntentGreeting:            "Hello! Welcome to HealthPlug Pharmacy. How can I help you today? Type \"help\" to see the menu.",
	IntentRegister:            "Let's get you registered.",
	IntentLogin:               "Let's log you in.",
	IntentSearchDoctors:       "Looking up doctors for you...",
	IntentSearchProducts:      "Searching our catalogue...",
	IntentAddToCart:           "Adding that to your cart...",
	IntentPlaceOrder:          "Placing your order...",
	IntentTrackOrder:          "Let me check on that order for you...",
	IntentBookAppointment:     "Let's book that appointment.",
	IntentPayment:             "Let's get your payment sorted.",
	IntentViewCart:            "Here's what's in your cart:",
	IntentSupport:             "Connecting you with our support team...",
	IntentDiagnosticTests:     "Here are the diagnostic tests we offer:",
	IntentHealthcareProducts:  "Here are our healthcare products:",
	IntentPasswordReset:       "Let's reset your password.",
	IntentPrescriptionUpload:  "Please send a photo of your prescription and our pharmacist will review it.",
	IntentPaginationSelection: "Got it, one moment...",
	IntentUnknown:             unknownFulfillment,
	IntentError:               errorFulfillment,
}

// compose assembles the final result, flattening the typed parameter set to
// the wire map and filling in default fulfillment text when the rule handler
// supplied none.
func compose(intentName string, params Params, text, source string) Result {
	flat := map[string]string{}
	if params != nil {
		flat = params.toMap()
	}
	if text == "" {
		if def, ok := defaultFulfillments[intentName]; ok {
			text = def
		} else {
			text = unknownFulfillment
		}
	}
	return Result{
		Intent:          intentName,
		Parameters:      flat,
		FulfillmentText: text,
		Confidence:      ClassifiedConfidence,
		Source:          source,
	}
}
