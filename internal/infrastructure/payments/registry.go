package payments

import (
	"fmt"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
)

// Provider ids used on the inbound webhook path (/v1/webhooks/:provider).
const (
	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
	ProviderPix         = "pix"
)

// Registry wires each payment method to its integration and each webhook
// provider id to the adapter that can authenticate its deliveries.
type Registry struct {
	byMethod   map[entities.PaymentMethod]interfaces.IPaymentProvider
	byProvider map[string]interfaces.IPaymentProvider
}

var _ interfaces.IProviderResolver = (*Registry)(nil)

// NewRegistry builds every configured adapter. Credentials are validated at
// startup so a misconfigured provider fails the process, not a request.
func NewRegistry(cfg Config) (*Registry, error) {
	stripeGateway, err := NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	if err != nil {
		return nil, err
	}

	if cfg.MercadoPagoAccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}
	mpCfg, err := mpconfig.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		return nil, err
	}
	wallet := NewMercadoPagoWalletGateway(mpCfg, cfg.MercadoPagoWebhookSecret, cfg.MercadoPagoPayerEmail)
	pix := NewMercadoPagoPixGateway(mpCfg, cfg.MercadoPagoWebhookSecret, cfg.MercadoPagoPayerEmail)

	r := &Registry{
		byMethod:   map[entities.PaymentMethod]interfaces.IPaymentProvider{},
		byProvider: map[string]interfaces.IPaymentProvider{},
	}
	r.register(entities.MethodCard, stripeGateway)
	r.register(entities.MethodWallet, wallet)
	r.register(entities.MethodInstantTransfer, pix)
	return r, nil
}

func (r *Registry) register(method entities.PaymentMethod, provider interfaces.IPaymentProvider) {
	r.byMethod[method] = provider
	r.byProvider[provider.ID()] = provider
}

func (r *Registry) ForMethod(method entities.PaymentMethod) (interfaces.IPaymentProvider, error) {
	provider, ok := r.byMethod[method]
	if !ok {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}
	return provider, nil
}

func (r *Registry) ForProvider(providerID string) (interfaces.IPaymentProvider, error) {
	provider, ok := r.byProvider[providerID]
	if !ok {
		return nil, fmt.Errorf("unknown payment provider: %s", providerID)
	}
	return provider, nil
}
