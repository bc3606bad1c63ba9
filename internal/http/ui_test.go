package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-meddevice-intelligence-ui/internal/connectors/prediction"
)

const resultPlaceholder = "Results will be displayed here after submission"

func submitForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func preMulticlassForm() url.Values {
	return url.Values{
		"deviceName":             {"LifeVent Pro Ventilator"},
		"manufacturerSourceName": {"Acme Medical"},
		"riskClass":              {"Basic/Regulatory Device"},
		"classification":         {"Ventilator"},
		"implanted":              {"true"},
		"quantityInCommerce":     {"2500"},
		"country":                {"DEU"},
		"parentCompany":          {"Acme Holdings"},
	}
}

func TestDashboardPage(t *testing.T) {
	h := newHandler(testConfig(), &fakePredictor{})

	rr := serve(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "<title>MedDevice Intelligence</title>")
	assert.Contains(t, body, "AI-Powered Medical Device Safety Analytics")
	assert.Contains(t, body, "Pre-Use Severity Prediction")
	assert.Contains(t, body, "Advanced/Critical Care Device")
	assert.Contains(t, body, `value="1000"`)
	assert.Contains(t, body, resultPlaceholder)
	assert.NotContains(t, body, `class="theme-dark"`)
	assert.Contains(t, body, "--anim: 0ms")

	rr = serve(h, http.MethodGet, "/?tab=status-summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Device Status Summary")
	assert.NotContains(t, rr.Body.String(), "Pre-Use Severity Prediction")

	rr = serve(h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboardPage_DarkTheme(t *testing.T) {
	cfg := testConfig()
	cfg.UI.EnableDarkMode = true
	cfg.UI.DefaultTheme = "dark"
	h := newHandler(cfg, &fakePredictor{})

	rr := serve(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `class="theme-dark"`)
}

func TestFavicon(t *testing.T) {
	h := newHandler(testConfig(), &fakePredictor{})
	assert.Equal(t, http.StatusNoContent, serve(h, http.MethodGet, "/favicon.ico", nil).Code)
}

func TestPreMulticlassSubmit_Mock(t *testing.T) {
	cfg := testConfig()
	h := newHandler(cfg, mockClient(cfg))

	rr := submitForm(h, "/ui/pre-multiclass", preMulticlassForm())
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Probability Distribution")
	assert.Contains(t, body, "CLASS I")
	assert.Contains(t, body, "background: #10b981")
	assert.NotContains(t, body, resultPlaceholder)
	assert.Contains(t, body, `value="LifeVent Pro Ventilator"`)
}

func TestPreMulticlassSubmit_PassesResolvedRequest(t *testing.T) {
	fake := &fakePredictor{pre: &prediction.PreMulticlassResponse{
		PredClass:     prediction.ClassII,
		Probabilities: prediction.Probabilities{ClassI: 0.2, ClassII: 0.5, ClassIII: 0.3},
	}}
	h := newHandler(testConfig(), fake)

	rr := submitForm(h, "/ui/pre-multiclass", preMulticlassForm())
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, fake.preReqs, 1)
	got := fake.preReqs[0]
	assert.Equal(t, prediction.RiskClassI, got.RiskClass)
	assert.True(t, got.Implanted)
	assert.Equal(t, 2500, got.QuantityInCommerce)
	assert.Equal(t, "DEU", got.Country)
}

func TestPreMulticlassSubmit_InvalidForm(t *testing.T) {
	fake := &fakePredictor{}
	h := newHandler(testConfig(), fake)

	form := preMulticlassForm()
	form.Set("quantityInCommerce", "250000")
	form.Del("parentCompany")
	rr := submitForm(h, "/ui/pre-multiclass", form)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Quantity must be at most 100000")
	assert.Contains(t, body, "Parent company is required")
	assert.Empty(t, fake.preReqs)
}

func TestPostBinarySubmit_UpstreamFailureShowsPlaceholder(t *testing.T) {
	fake := &fakePredictor{err: &prediction.RequestFailedError{StatusCode: http.StatusNotFound, StatusText: "Not Found"}}
	h := newHandler(testConfig(), fake)

	rr := submitForm(h, "/ui/post-binary", url.Values{
		"reason":        {"Battery overheating"},
		"action":        {"recall"},
		"actionSummary": {"Units recalled"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, resultPlaceholder)
	assert.NotContains(t, body, "Risk Score")
	assert.NotContains(t, body, "API call failed")
}

func TestPostBinarySubmit_DebugShowsRawResponse(t *testing.T) {
	cfg := testConfig()
	cfg.Features.EnableDebugMode = true
	fake := &fakePredictor{post: &prediction.PostBinaryResponse{Score: 0.8, PredHighRisk: 1, ConfidenceLevel: 0.9}}
	h := newHandler(cfg, fake)

	rr := submitForm(h, "/ui/post-binary", url.Values{
		"reason":        {"Battery overheating"},
		"action":        {"recall"},
		"actionSummary": {"Units recalled"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "High Risk")
	assert.Contains(t, body, "80.0%")
	assert.Contains(t, body, `&#34;pred_high_risk&#34;: 1`)
}

func TestPostBinarySubmit_DebugShowsError(t *testing.T) {
	cfg := testConfig()
	cfg.Features.EnableDebugMode = true
	h := newHandler(cfg, &fakePredictor{err: errors.New("dial tcp: connection refused")})

	rr := submitForm(h, "/ui/post-binary", url.Values{
		"reason":        {"Battery overheating"},
		"action":        {"recall"},
		"actionSummary": {"Units recalled"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "error: dial tcp: connection refused")
	assert.Contains(t, rr.Body.String(), resultPlaceholder)
}

func TestStatusSummarySubmit_DeviceNotFound(t *testing.T) {
	fake := &fakePredictor{status: &prediction.StatusSummaryResponse{Error: prediction.ErrDeviceNotFound}}
	h := newHandler(testConfig(), fake)

	rr := submitForm(h, "/ui/status-summary", url.Values{
		"country":    {"Japan"},
		"deviceName": {"Ghost Device"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Device not found")
	assert.NotContains(t, body, "Event Status Overview")
	assert.NotContains(t, body, "Recent Events")
	assert.NotContains(t, body, "Top Manufacturers")

	require.Len(t, fake.statusReqs, 1)
	assert.Equal(t, prediction.StatusSummaryRequest{Country: "Japan", DeviceName: "Ghost Device"}, fake.statusReqs[0])
}

func TestStatusSummarySubmit_RendersSections(t *testing.T) {
	fake := &fakePredictor{status: &prediction.StatusSummaryResponse{
		StatusCounts: map[string]int{"Completed": 30, "Open, Classified": 6, "Under Investigation": 4},
		Top5Events: []prediction.Event{
			{ID: "E001", Action: "Recall", Status: "Completed", Date: "2024-01-15"},
		},
		Manufacturers: prediction.Manufacturers{{Name: "Acme Medical", EventCount: 12}},
	}}
	h := newHandler(testConfig(), fake)

	rr := submitForm(h, "/ui/status-summary", url.Values{
		"country":    {"USA"},
		"deviceName": {"LifeVent Pro Ventilator"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Event Status Overview")
	assert.Contains(t, body, "Jan 15, 2024")
	assert.Contains(t, body, "Acme Medical")
	assert.Contains(t, body, "12 events")
	assert.Contains(t, body, "Active Events: <strong>10</strong>")
	assert.Contains(t, body, "Most Common Status: <strong>Completed</strong>")
	assert.Contains(t, body, "border-left-color: #f59e0b")
}

func TestSubmitRedirectsGet(t *testing.T) {
	h := newHandler(testConfig(), &fakePredictor{})

	rr := serve(h, http.MethodGet, "/ui/post-binary", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?tab=post-binary", rr.Header().Get("Location"))
}
