package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"kraal-bknd/internal/models"
	"kraal-bknd/internal/services"
)

func newPreviewHandler() *DeliverabilityHandler {
	// Preview never touches the DB or the location store.
	svc := services.NewDeliverabilityService(nil, nil)
	return NewDeliverabilityHandler(svc, zap.NewNop())
}

func TestPreviewCoverageRadiusHit(t *testing.T) {
	h := newPreviewHandler()

	body := `{
		"service_area": {"mode":"radius","origin":{"lat":-26.2041,"lng":28.0473},"radius_km":100},
		"seller_country": "ZA",
		"buyer": {"lat":-25.7479,"lng":28.2293,"country":"ZA"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deliverability/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PreviewCoverage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.DeliverabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Status.Allowed {
		t.Errorf("Allowed = false: %+v", resp.Status)
	}
	if resp.Action != models.ActionBuyNow {
		t.Errorf("Action = %s, want BUY_NOW", resp.Action)
	}
	if resp.Status.DistanceKm == nil || *resp.Status.DistanceKm < 50 || *resp.Status.DistanceKm > 60 {
		t.Errorf("DistanceKm = %v, want ≈54", resp.Status.DistanceKm)
	}
}

func TestPreviewCoverageCrossBorder(t *testing.T) {
	h := newPreviewHandler()

	body := `{
		"service_area": {"mode":"radius","origin":{"lat":-26.2041,"lng":28.0473},"radius_km":100},
		"seller_country": "ZA",
		"buyer": {"lat":-25.7479,"lng":28.2293,"country":"BW"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deliverability/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PreviewCoverage(rec, req)

	var resp models.DeliverabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Status.CrossBorder || resp.Action != models.ActionRequestRFQ {
		t.Errorf("got %+v / %s, want cross-border REQUEST_RFQ", resp.Status, resp.Action)
	}
}

func TestPreviewCoverageBadRequests(t *testing.T) {
	h := newPreviewHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown mode", `{"service_area":{"mode":"teleport"},"seller_country":"ZA","buyer":{}}`},
		{"out-of-range coordinate", `{
			"service_area": {"mode":"provinces","provinces":["GP"]},
			"seller_country": "ZA",
			"buyer": {"lat":123,"lng":456}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/deliverability/preview", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.PreviewCoverage(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPreviewCoverageProvinceMiss(t *testing.T) {
	h := newPreviewHandler()

	body := `{
		"service_area": {"mode":"provinces","provinces":["GP","WC"]},
		"seller_country": "ZA",
		"buyer": {"province":"KZN","country":"ZA"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deliverability/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PreviewCoverage(rec, req)

	var resp models.DeliverabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status.Allowed || resp.Status.Reason != models.ReasonProvinceBlocked {
		t.Errorf("status = %+v, want PROVINCE_BLOCKED", resp.Status)
	}
	if resp.Action != models.ActionRequestQuote {
		t.Errorf("Action = %s, want REQUEST_QUOTE", resp.Action)
	}
}
