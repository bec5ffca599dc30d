package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	errGatewayRequest  = errs.New("gateway request failed")
	errGatewayResponse = errs.New("gateway returned an unexpected response")
)

const referencePrefix = "CPB"

// buildReference embeds the reservation id so a return redirect can be
// reconciled without a lookup table.
func buildReference(reservationID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", referencePrefix, reservationID, now.UnixNano())
}

// reservationFromReference reverses buildReference.
func reservationFromReference(reference string) (uuid.UUID, error) {
	parts := strings.Split(reference, "-")
	// CPB + 5 uuid groups + timestamp
	if len(parts) < 7 || parts[0] != referencePrefix {
		return uuid.Nil, errs.Wrap(errGatewayResponse, "malformed payment reference")
	}
	id, err := uuid.Parse(strings.Join(parts[1:6], "-"))
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "malformed payment reference")
	}
	return id, nil
}

func postJSON(ctx context.Context, client *http.Client, url, secretKey string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)
	req.Header.Set("Content-Type", "application/json")

	return doJSON(client, req, out)
}

func getJSON(ctx context.Context, client *http.Client, url, secretKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)

	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return errs.Mark(err, errGatewayRequest)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.Mark(err, errGatewayRequest)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(errs.Newf("gateway status %d: %s", resp.StatusCode, string(raw)), errGatewayRequest)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Mark(err, errGatewayResponse)
	}
	return nil
}

// Resolver maps gateway path names to configured clients.
type Resolver struct {
	gateways map[string]commands.PaymentGateway
}

func NewResolver(gateways ...commands.PaymentGateway) *Resolver {
	m := make(map[string]commands.PaymentGateway, len(gateways))
	for _, gw := range gateways {
		m[gw.Name()] = gw
	}
	return &Resolver{gateways: m}
}

func (r *Resolver) Resolve(name string) (commands.PaymentGateway, bool) {
	gw, ok := r.gateways[strings.ToLower(name)]
	return gw, ok
}
