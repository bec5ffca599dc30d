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

// FlutterwaveClient drives Flutterwave's hosted checkout. The return
// redirect carries a transaction id, so Verify takes that id and reads the
// tx_ref back out of the response.
type FlutterwaveClient struct {
	baseURL     string
	secretKey   string
	callbackURL string
	client      *http.Client
	clock       clock.Clock
}

func NewFlutterwaveClient(cfg config.PaymentConfig, clk clock.Clock) *FlutterwaveClient {
	return &FlutterwaveClient{
		baseURL:     strings.TrimRight(cfg.FlutterwaveBaseURL, "/"),
		secretKey:   cfg.FlutterwaveSecretKey,
		callbackURL: cfg.CallbackURL,
		client:      &http.Client{Timeout: cfg.GatewayTimeout},
		clock:       clk,
	}
}

func (f *FlutterwaveClient) Name() string {
	return "flutterwave"
}

type flutterwaveInitRequest struct {
	TxRef       string                  `json:"tx_ref"`
	Amount      int64                   `json:"amount"`
	Currency    string                  `json:"currency"`
	RedirectURL string                  `json:"redirect_url"`
	Customer    flutterwaveInitCustomer `json:"customer"`
}

type flutterwaveInitCustomer struct {
	Email string `json:"email"`
}

type flutterwaveInitResponse struct {
	Status string `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		Link string `json:"link"`
	} `json:"data"`
}

func (f *FlutterwaveClient) Initialize(ctx context.Context, params commands.InitiateParams) (*commands.GatewayInitiation, error) {
	reference := buildReference(params.ReservationID, f.clock.Now())
	body := flutterwaveInitRequest{
		TxRef:       reference,
		Amount:      params.Amount,
		Currency:    "NGN",
		RedirectURL: f.callbackURL,
		Customer:    flutterwaveInitCustomer{Email: params.Email},
	}

	var resp flutterwaveInitResponse
	if err := postJSON(ctx, f.client, f.baseURL+"/v3/payments", f.secretKey, body, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" || resp.Data.Link == "" {
		return nil, errs.Mark(errs.Newf("flutterwave initialize rejected: %s", resp.Msg), errGatewayResponse)
	}

	return &commands.GatewayInitiation{
		CheckoutURL: resp.Data.Link,
		Reference:   reference,
	}, nil
}

type flutterwaveVerifyResponse struct {
	Status string `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		Status   string `json:"status"`
		TxRef    string `json:"tx_ref"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

func (f *FlutterwaveClient) Verify(ctx context.Context, transactionID string) (*commands.GatewayVerification, error) {
	var resp flutterwaveVerifyResponse
	if err := getJSON(ctx, f.client, f.baseURL+"/v3/transactions/"+transactionID+"/verify", f.secretKey, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, errs.Mark(errs.Newf("flutterwave verify rejected: %s", resp.Msg), errGatewayResponse)
	}

	reservationID, err := reservationFromReference(resp.Data.TxRef)
	if err != nil {
		return nil, err
	}

	return &commands.GatewayVerification{
		Reference:     resp.Data.TxRef,
		ReservationID: reservationID,
		Paid:          resp.Data.Status == "successful",
		Amount:        resp.Data.Amount,
		RawStatus:     resp.Data.Status,
	}, nil
}
