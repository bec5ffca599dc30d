package gateway

import (
	"context"
	"net/http"
	"strings"

	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/config"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"
)

// PaystackClient drives Paystack's hosted checkout. Amounts are converted
// to kobo on the wire.
type PaystackClient struct {
	baseURL     string
	secretKey   string
	callbackURL string
	client      *http.Client
	clock       clock.Clock
}

func NewPaystackClient(cfg config.PaymentConfig, clk clock.Clock) *PaystackClient {
	return &PaystackClient{
		baseURL:     strings.TrimRight(cfg.PaystackBaseURL, "/"),
		secretKey:   cfg.PaystackSecretKey,
		callbackURL: cfg.CallbackURL,
		client:      &http.Client{Timeout: cfg.GatewayTimeout},
		clock:       clk,
	}
}

func (p *PaystackClient) Name() string {
	return "paystack"
}

type paystackInitRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

type paystackInitResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (p *PaystackClient) Initialize(ctx context.Context, params commands.InitiateParams) (*commands.GatewayInitiation, error) {
	reference := buildReference(params.ReservationID, p.clock.Now())
	body := paystackInitRequest{
		Email:       params.Email,
		Amount:      params.Amount * 100, // naira to kobo
		Reference:   reference,
		CallbackURL: p.callbackURL,
	}

	var resp paystackInitResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/transaction/initialize", p.secretKey, body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status || resp.Data.AuthorizationURL == "" {
		return nil, errs.Mark(errs.Newf("paystack initialize rejected: %s", resp.Msg), errGatewayResponse)
	}

	return &commands.GatewayInitiation{
		CheckoutURL: resp.Data.AuthorizationURL,
		Reference:   resp.Data.Reference,
	}, nil
}

type paystackVerifyResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

func (p *PaystackClient) Verify(ctx context.Context, reference string) (*commands.GatewayVerification, error) {
	var resp paystackVerifyResponse
	if err := getJSON(ctx, p.client, p.baseURL+"/transaction/verify/"+reference, p.secretKey, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, errs.Mark(errs.Newf("paystack verify rejected: %s", resp.Msg), errGatewayResponse)
	}

	reservationID, err := reservationFromReference(resp.Data.Reference)
	if err != nil {
		return nil, err
	}

	return &commands.GatewayVerification{
		Reference:     resp.Data.Reference,
		ReservationID: reservationID,
		Paid:          resp.Data.Status == "success",
		Amount:        resp.Data.Amount / 100, // kobo to naira
		RawStatus:     resp.Data.Status,
	}, nil
}
