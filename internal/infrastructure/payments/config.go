package payments

import "os"

// Config holds every provider credential, injected explicitly at startup.
// Adapters never read credentials from process-global state after
// construction.
//
// Env vars:
//   - STRIPE_API_KEY / STRIPE_WEBHOOK_SECRET
//   - MERCADOPAGO_ACCESS_TOKEN / MERCADOPAGO_WEBHOOK_SECRET
//   - MERCADOPAGO_TEST_PAYER_EMAIL (sandbox payer fallback)
type Config struct {
	StripeAPIKey             string
	StripeWebhookSecret      string
	MercadoPagoAccessToken   string
	MercadoPagoWebhookSecret string
	MercadoPagoPayerEmail    string
}

func ConfigFromEnv() Config {
	return Config{
		StripeAPIKey:             os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret:      os.Getenv("STRIPE_WEBHOOK_SECRET"),
		MercadoPagoAccessToken:   os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		MercadoPagoWebhookSecret: os.Getenv("MERCADOPAGO_WEBHOOK_SECRET"),
		MercadoPagoPayerEmail:    os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"),
	}
}
