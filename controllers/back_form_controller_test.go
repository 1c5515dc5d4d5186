package controllers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FIC_Backend/models"
	"FIC_Backend/router"
	"FIC_Backend/session"
)

func newTestServer(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fs := newFakeStore()
	mgr := session.NewManager(fs)
	t.Cleanup(mgr.CloseAll)
	return router.Setup(router.Deps{Store: fs, Sessions: mgr}), fs
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestBackFormRequiresVIN(t *testing.T) {
	r, fs := newTestServer(t)
	w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form",
		`{"section":"paintMicrons","paintMicrons":[{"row":0,"hood":"85"}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "VIN is required", body["error"])
	assert.Zero(t, fs.inserted())
}

func TestBackFormRequiresValidSection(t *testing.T) {
	r, fs := newTestServer(t)
	for _, body := range []string{
		`{"vin":"V1"}`,
		`{"vin":"V1","section":"bogus"}`,
	} {
		w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "Section is required. Valid values: paintMicrons, partsChanges, both", resp["error"])
	}
	assert.Zero(t, fs.inserted())
}

func TestBackFormSectionRequiresArray(t *testing.T) {
	r, fs := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form", `{"vin":"V1","section":"paintMicrons"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "paintMicrons array is required")

	// End-to-end scenario: both demands partsChanges too.
	w = doJSON(r, http.MethodPost, "/api/v1/fic/back-form",
		`{"vin":"V1","section":"both","paintMicrons":[{"row":0,"hood":"85"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "partsChanges array is required")

	assert.Zero(t, fs.inserted())
}

func TestBackFormRowRangeValidation(t *testing.T) {
	r, fs := newTestServer(t)

	cases := []struct {
		body string
		want string
	}{
		{`{"vin":"V1","section":"paintMicrons","paintMicrons":[{"row":10,"hood":"85"}]}`,
			"Invalid paint microns row: 10. Valid range is 0-9"},
		{`{"vin":"V1","section":"paintMicrons","paintMicrons":[{"row":-1,"hood":"85"}]}`,
			"Invalid paint microns row: -1. Valid range is 0-9"},
		{`{"vin":"V1","section":"partsChanges","partsChanges":[{"row":12,"partName":"Front Bumper"}]}`,
			"Invalid parts change row: 12. Valid range is 0-11"},
	}
	for _, tc := range cases {
		w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, tc.want, decodeBody(t, w)["error"])
	}
	assert.Zero(t, fs.inserted(), "rejected submissions never reach the store")
}

func TestBackFormValidSubmissionQueued(t *testing.T) {
	r, fs := newTestServer(t)
	w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form",
		`{"vin":"5J8YD9H43TL000680","section":"paintMicrons","paintMicrons":[{"row":0,"hood":"85","repairConfirmedBy":"John"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "FIC Back Form data received and queued for form update", body["message"])
	assert.NotEmpty(t, body["timestamp"])
	received := body["receivedData"].(map[string]any)
	assert.Equal(t, "5J8YD9H43TL000680", received["vin"])

	require.Equal(t, 1, fs.inserted())
	rec := fs.record(0)
	assert.Equal(t, models.FormTypeBack, rec.FormType)
	assert.Equal(t, models.SectionPaintMicrons, rec.Section)
	assert.Equal(t, "5J8YD9H43TL000680", rec.VIN)
	assert.False(t, rec.Processed)

	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Data, &data))
	assert.Contains(t, data, "paintMicrons")
}

func TestBackFormLargeSubmissionQueued(t *testing.T) {
	// A fully populated submission runs well past the size a NOTIFY payload
	// could carry; the endpoint and store must still take it whole.
	r, fs := newTestServer(t)

	long := strings.Repeat("x", 600)
	paint := make([]map[string]any, 0, 10)
	for i := 0; i < 10; i++ {
		paint = append(paint, map[string]any{
			"row": i, "fillLid": long, "allBody": long, "hood": long, "roof": long,
			"trunkTailgate": long, "fenderLeft": long, "fenderRight": long,
			"rearPanelLeft": long, "rearPanelRight": long, "frontDoor1": long,
			"frontDoor2": long, "rearDoor3": long, "rearDoor4": long,
			"pillarLeft": long, "pillarRight": long, "locationMain": long,
			"locationFinal": long, "repairConfirmedBy": long,
		})
	}
	parts := make([]map[string]any, 0, 12)
	for i := 0; i < 12; i++ {
		parts = append(parts, map[string]any{
			"row": i, "partName": long, "removedBy": long,
			"installedBy": long, "inspectedBy": long,
		})
	}
	body, err := json.Marshal(map[string]any{
		"vin": "5J8YD9H43TL000680", "section": "both",
		"paintMicrons": paint, "partsChanges": parts,
	})
	require.NoError(t, err)
	require.Greater(t, len(body), 100_000)

	w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	require.Equal(t, 1, fs.inserted())
	rec := fs.record(0)
	assert.Equal(t, models.SectionBoth, rec.Section)
	assert.Greater(t, len(rec.Data), 100_000, "stored data is the full payload, not a truncation")
}

func TestBackFormStoreFailure(t *testing.T) {
	r, fs := newTestServer(t)
	fs.insertErr = errors.New("connection refused")

	w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form",
		`{"vin":"V1","section":"partsChanges","partsChanges":[{"row":0,"partName":"Front Bumper"}]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to store form data", body["error"])
	assert.Equal(t, "connection refused", body["details"])
}

func TestBackFormMalformedJSON(t *testing.T) {
	r, fs := newTestServer(t)
	w := doJSON(r, http.MethodPost, "/api/v1/fic/back-form", `{"vin":`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
	assert.Zero(t, fs.inserted())
}

func TestBackFormGetSchemaNoMutation(t *testing.T) {
	r, fs := newTestServer(t)
	w := doJSON(r, http.MethodGet, "/api/v1/fic/back-form", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "/api/v1/fic/back-form", body["endpoint"])
	assert.Contains(t, body, "schema")
	assert.Zero(t, fs.inserted())
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(r, http.MethodOptions, "/api/v1/fic/back-form", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(r, http.MethodPatch, "/api/v1/fic/back-form", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", decodeBody(t, w)["error"])
}

func TestPendingListing(t *testing.T) {
	r, _ := newTestServer(t)
	doJSON(r, http.MethodPost, "/api/v1/fic/back-form",
		`{"vin":"V1","section":"partsChanges","partsChanges":[{"row":1,"removeX":false}]}`)

	w := doJSON(r, http.MethodGet, "/api/v1/fic/pending?form_type=back_form&processed=false", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	rec := data[0].(map[string]any)
	assert.Equal(t, "back_form", rec["form_type"])
	assert.Equal(t, false, rec["processed"])
}
