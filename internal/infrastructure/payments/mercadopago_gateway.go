package payments

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"pagamentos_api/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const webhookPath = "/api/payment/webhook/mercadopago"

// MercadoPagoGateway opens checkout preferences at Mercado Pago.
//
// Each preference carries the payment id as external_reference so the webhook
// can correlate notifications back to our record, and a notification_url
// pointing at this service's webhook endpoint.

type MercadoPagoGateway struct {
	client   preference.Client
	baseURL  string
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, baseURL string) (*MercadoPagoGateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{baseURL: baseURL, mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: preference.NewClient(cfg), baseURL: baseURL}, nil
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutPreference, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock preference created payment_id=%s preference_id=%s", req.PaymentID, id)
		return interfaces.CheckoutPreference{
			ID:        id,
			InitPoint: g.baseURL + "/mock-checkout/" + id,
		}, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.CheckoutPreference{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create preference start payment_id=%s amount=%.2f", req.PaymentID, req.Amount)

	resp, err := g.client.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     req.Description,
				Quantity:  1,
				UnitPrice: req.Amount,
			},
		},
		Payer: &preference.PayerRequest{
			Email: req.PayerEmail,
		},
		ExternalReference: req.PaymentID,
		NotificationURL:   g.baseURL + webhookPath,
		BackURLs: &preference.BackURLsRequest{
			Success: g.baseURL + "/payment/success",
			Failure: g.baseURL + "/payment/failure",
			Pending: g.baseURL + "/payment/pending",
		},
		AutoReturn: "approved",
	})
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed payment_id=%s err=%v", req.PaymentID, err)
		return interfaces.CheckoutPreference{}, err
	}

	log.Printf("[payment][gateway] create preference success payment_id=%s preference_id=%s", req.PaymentID, resp.ID)
	return interfaces.CheckoutPreference{ID: resp.ID, InitPoint: resp.InitPoint}, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
