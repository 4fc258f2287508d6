package intent

// Params is the typed parameter set an extractor produces for one intent.
// Each variant carries only the fields that intent can yield; flattening to
// the wire map happens in the composer, and empty fields are omitted there
// so extractors stay total.
type Params interface {
	toMap() map[string]string
}

// Credentials are extracted from register/login messages.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

func (p Credentials) toMap() map[string]string {
	return buildMap(
		"name", p.Name,
		"email", p.Email,
		"password", p.Password,
	)
}

// ProductQuery is the best-effort product name left after verb stripping.
type ProductQuery struct {
	ProductName string
}

func (p ProductQuery) toMap() map[string]string {
	return buildMap("productName", p.ProductName)
}

// CartItem identifies a product by name or list index, with a quantity.
type CartItem struct {
	ProductName  string
	ProductIndex string
	Quantity     string
}

func (p CartItem) toMap() map[string]string {
	return buildMap(
		"productName", p.ProductName,
		"productIndex", p.ProductIndex,
		"quantity", p.Quantity,
	)
}

// OrderPlacement carries checkout details.
type OrderPlacement struct {
	Address       string
	PaymentMethod string
}

func (p OrderPlacement) toMap() map[string]string {
	return buildMap(
		"address", p.Address,
		"paymentMethod", p.PaymentMethod,
	)
}

// OrderRef carries an order reference resolved by the order-ID parser.
type OrderRef struct {
	OrderID string
}

func (p OrderRef) toMap() map[string]string {
	return buildMap("orderId", p.OrderID)
}

// DoctorQuery carries a recognized specialty and location.
type DoctorQuery struct {
	Specialty string
	Location  string
}

func (p DoctorQuery) toMap() map[string]string {
	return buildMap(
		"specialty", p.Specialty,
		"location", p.Location,
	)
}

// Appointment carries a doctor list index plus date and time.
type Appointment struct {
	DoctorIndex string
	Date        string
	Time        string
}

func (p Appointment) toMap() map[string]string {
	return buildMap(
		"doctorIndex", p.DoctorIndex,
		"date", p.Date,
		"time", p.Time,
	)
}

// DiagnosticTest names a recognized diagnostic test.
type DiagnosticTest struct {
	Name string
}

func (p DiagnosticTest) toMap() map[string]string {
	return buildMap("testName", p.Name)
}

// HealthcareItem names a recognized healthcare product.
type HealthcareItem struct {
	Name string
}

func (p HealthcareItem) toMap() map[string]string {
	return buildMap("productName", p.Name)
}

// EmailParam carries the lone email used by password reset.
type EmailParam struct {
	Email string
}

func (p EmailParam) toMap() map[string]string {
	return buildMap("email", p.Email)
}

// Selection is the list index chosen during pagination.
type Selection struct {
	Value string
}

func (p Selection) toMap() map[string]string {
	return buildMap("selection", p.Value)
}

// buildMap takes key/value pairs and keeps the non-empty ones.
func buildMap(pairs ...string) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			m[pairs[i]] = pairs[i+1]
		}
	}
	return m
}
