package config

// Gateway operating modes.
const (
	ModeSandbox    = "sandbox"
	ModeProduction = "production"
)

// GatewayConfig holds the payment gateway settings. Every recognized key is
// an explicit field; nothing is read from loose maps at runtime.
type GatewayConfig struct {
	// GatewayID identifies this gateway instance. Combined with Mode it
	// scopes remote-user associations stored on local accounts.
	GatewayID string

	// Mode selects the processor environment (sandbox or production).
	Mode string

	// ClientID and ClientSecret authenticate API calls to the processor.
	ClientID     string
	ClientSecret string

	// Tag marks every remote resource created by this integration so they
	// can be told apart from resources created by other integrations
	// against the same processor account.
	Tag string

	// CurrencyCode is the checkout currency (ISO 4217).
	CurrencyCode string

	// CardTypeHint is the processor-side card type used when opening card
	// registration sessions (e.g. "CB_VISA_MASTERCARD").
	CardTypeHint string

	// SimpleKYC relaxes registration requirements: nationality and date of
	// birth become optional.
	SimpleKYC bool

	// BaseURL overrides the processor endpoint derived from Mode. Used in
	// tests; leave empty in real deployments.
	BaseURL string

	// PublicURL is this server's externally reachable base URL, used to
	// build secure-mode return URLs.
	PublicURL string

	// SuccessURL and FailureURL are the checkout pages the secure-mode
	// completion handler redirects the browser to.
	SuccessURL string
	FailureURL string
}

// LoadGatewayConfig builds the gateway configuration from the environment.
func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		GatewayID:    GetEnv("GATEWAY_ID", "payflow"),
		Mode:         GetEnv("GATEWAY_MODE", ModeSandbox),
		ClientID:     GetEnv("MANGOPAY_CLIENT_ID", ""),
		ClientSecret: GetEnv("MANGOPAY_CLIENT_SECRET", ""),
		Tag:          GetEnv("GATEWAY_TAG", "payflow commerce"),
		CurrencyCode: GetEnv("GATEWAY_CURRENCY", "EUR"),
		CardTypeHint: GetEnv("GATEWAY_CARD_TYPE", "CB_VISA_MASTERCARD"),
		SimpleKYC:    GetBoolEnv("GATEWAY_SIMPLE_KYC", false),
		BaseURL:      GetEnv("MANGOPAY_BASE_URL", ""),
		PublicURL:    GetEnv("PUBLIC_URL", "http://localhost:3000"),
		SuccessURL:   GetEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/checkout/complete"),
		FailureURL:   GetEnv("CHECKOUT_FAILURE_URL", "http://localhost:3000/checkout/payment"),
	}
}

// RemoteIDProvider returns the key under which remote-user associations are
// stored on local accounts. Keyed by gateway and mode so sandbox and
// production identities never mix.
func (c GatewayConfig) RemoteIDProvider() string {
	return c.GatewayID + "|" + c.Mode
}
