//go:build unit

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/config"
	"cappa-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func paymentConfig(baseURL string) config.PaymentConfig {
	return config.PaymentConfig{
		PaystackSecretKey:    "sk_test_paystack",
		PaystackBaseURL:      baseURL,
		FlutterwaveSecretKey: "fw_test_secret",
		FlutterwaveBaseURL:   baseURL,
		CallbackURL:          "https://booking.example.com/payment/verify",
		GatewayTimeout:       5 * time.Second,
	}
}

func TestPaystackInitialize(t *testing.T) {
	reservationID := uuid.New()

	t.Run("converts the amount to kobo", func(t *testing.T) {
		var got struct {
			Email       string `json:"email"`
			Amount      int64  `json:"amount"`
			Reference   string `json:"reference"`
			CallbackURL string `json:"callback_url"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/transaction/initialize", r.URL.Path)
			require.Equal(t, "Bearer sk_test_paystack", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			fmt.Fprintf(w, `{"status":true,"data":{"authorization_url":"https://checkout.paystack.com/abc","reference":%q}}`, got.Reference)
		}))
		defer srv.Close()

		client := NewPaystackClient(paymentConfig(srv.URL), clock.NewMockClock(fixedNow))
		init, err := client.Initialize(context.Background(), commands.InitiateParams{
			ReservationID: reservationID,
			Email:         "adaeze@example.com",
			Amount:        660000,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(66000000), got.Amount)
		assert.Equal(t, "adaeze@example.com", got.Email)
		assert.Equal(t, "https://booking.example.com/payment/verify", got.CallbackURL)
		assert.Equal(t, buildReference(reservationID, fixedNow), got.Reference)
		assert.Equal(t, "https://checkout.paystack.com/abc", init.CheckoutURL)
		assert.Equal(t, got.Reference, init.Reference)
	})

	t.Run("rejected initialization", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"status":false,"message":"Invalid key"}`)
		}))
		defer srv.Close()

		client := NewPaystackClient(paymentConfig(srv.URL), clock.NewMockClock(fixedNow))
		_, err := client.Initialize(context.Background(), commands.InitiateParams{ReservationID: reservationID, Amount: 1000})
		assert.ErrorIs(t, err, errGatewayResponse)
	})

	t.Run("gateway 5xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewPaystackClient(paymentConfig(srv.URL), clock.NewMockClock(fixedNow))
		_, err := client.Initialize(context.Background(), commands.InitiateParams{ReservationID: reservationID, Amount: 1000})
		assert.ErrorIs(t, err, errGatewayRequest)
	})
}

func TestPaystackVerify(t *testing.T) {
	reservationID := uuid.New()
	reference := buildReference(reservationID, fixedNow)

	t.Run("successful payment", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/transaction/verify/"+reference, r.URL.Path)
			fmt.Fprintf(w, `{"status":true,"data":{"status":"success","reference":%q,"amount":66000000}}`, reference)
		}))
		defer srv.Close()

		client := NewPaystackClient(paymentConfig(srv.URL), clock.NewMockClock(fixedNow))
		v, err := client.Verify(context.Background(), reference)
		require.NoError(t, err)

		assert.True(t, v.Paid)
		assert.Equal(t, reservationID, v.ReservationID)
		assert.Equal(t, int64(660000), v.Amount, "kobo converted back to naira")
		assert.Equal(t, reference, v.Reference)
		assert.Equal(t, "success", v.RawStatus)
	})

	t.Run("abandoned payment is not paid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `{"status":true,"data":{"status":"abandoned","reference":%q,"amount":0}}`, reference)
		}))
		defer srv.Close()

		client := NewPaystackClient(paymentConfig(srv.URL), clock.NewMockClock(fixedNow))
		v, err := client.Verify(context.Background(), reference)
		require.NoError(t, err)

		assert.False(t, v.Paid)
		assert.Equal(t, "abandoned", v.RawStatus)
	})

	t.Run("malformed reference in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"status":true,"data":{"status":"success","reference":"not-a-reference","amount":100}}`)
		}))
		defer srv.Close()

		client := NewPaystackClient(paymentConfig(srv.URL), clock.NewMockClock(fixedNow))
		_, err := client.Verify(context.Background(), "not-a-reference")
		assert.Error(t, err)
	})
}

func TestReferenceRoundTrip(t *testing.T) {
	reservationID := uuid.New()

	reference := buildReference(reservationID, fixedNow)
	got, err := reservationFromReference(reference)
	require.NoError(t, err)
	assert.Equal(t, reservationID, got)

	for _, bad := range []string{"", "CPB", "XYZ-" + reservationID.String() + "-1", "CPB-zzzz-zzzz-zzzz-zzzz-zzzzzzzz-1"} {
		_, err := reservationFromReference(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolver(t *testing.T) {
	cfg := paymentConfig("http://localhost")
	clk := clock.NewMockClock(fixedNow)
	resolver := NewResolver(NewPaystackClient(cfg, clk), NewFlutterwaveClient(cfg, clk))

	gw, ok := resolver.Resolve("Paystack")
	require.True(t, ok, "name matching is case-insensitive")
	assert.Equal(t, "paystack", gw.Name())

	gw, ok = resolver.Resolve("flutterwave")
	require.True(t, ok)
	assert.Equal(t, "flutterwave", gw.Name())

	_, ok = resolver.Resolve("stripe")
	assert.False(t, ok)
}
