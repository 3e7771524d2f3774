package webui

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
	"github.com/georgemunganga/printa-vendors/internal/modules/vendorclient"
)

type uiFixture struct {
	router *chi.Mux
	client vendorclient.Client
}

// newUI wires the pages to a client for the API at apiURL.
func newUI(t *testing.T, apiURL string) *uiFixture {
	t.Helper()
	client := vendorclient.New(apiURL, nil)
	h, err := NewHandler(client)
	require.NoError(t, err)

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return &uiFixture{router: router, client: client}
}

// newUIWithAPI runs the real vendor API on an in-memory store behind the UI.
func newUIWithAPI(t *testing.T) *uiFixture {
	t.Helper()
	api := chi.NewRouter()
	vendor.NewHandler(vendor.NewService(vendor.NewMemoryRepository())).RegisterRoutes(api)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return newUI(t, srv.URL+"/api")
}

func (f *uiFixture) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (f *uiFixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *uiFixture) seed(t *testing.T, n int) []*vendor.Vendor {
	t.Helper()
	var out []*vendor.Vendor
	for i := 0; i < n; i++ {
		v, err := f.client.CreateVendor(context.Background(), validPayload(fmt.Sprintf("Vendor %02d", i)))
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func validPayload(name string) vendor.Payload {
	return vendor.Payload{
		VendorName:    name,
		BankAccountNo: "111",
		BankName:      "First Bank",
		AddressLine2:  "Suite 1",
	}
}

func validForm(name string) url.Values {
	return url.Values{
		"vendorName":    {name},
		"bankAccountNo": {"111"},
		"bankName":      {"First Bank"},
		"addressLine2":  {"Suite 1"},
	}
}

func TestUI_RootRedirectsToList(t *testing.T) {
	f := newUIWithAPI(t)
	rec := f.get("/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/vendors", rec.Header().Get("Location"))
}

func TestUI_EmptyState(t *testing.T) {
	f := newUIWithAPI(t)

	rec := f.get("/vendors")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "No vendors found.")
	assert.Contains(t, body, `href="/vendors/new"`)
	assert.NotContains(t, body, "<table")
	assert.NotContains(t, body, "pagination")
}

func TestUI_SinglePageHasNoPager(t *testing.T) {
	f := newUIWithAPI(t)
	f.seed(t, 10)

	body := f.get("/vendors").Body.String()
	assert.Contains(t, body, "<table")
	assert.Contains(t, body, "Vendor 09")
	assert.NotContains(t, body, "pagination")
	assert.NotContains(t, body, "No vendors found.")
}

func TestUI_Pager(t *testing.T) {
	f := newUIWithAPI(t)
	f.seed(t, 25)

	first := f.get("/vendors").Body.String()
	assert.Contains(t, first, "Page 1 of 3")
	assert.Contains(t, first, `<button class="btn btn-secondary" disabled>Previous</button>`)
	assert.Contains(t, first, `href="/vendors?page=2">Next</a>`)
	assert.Contains(t, first, "Vendor 00")
	assert.NotContains(t, first, "Vendor 10")

	middle := f.get("/vendors?page=2").Body.String()
	assert.Contains(t, middle, "Page 2 of 3")
	assert.Contains(t, middle, `href="/vendors?page=1">Previous</a>`)
	assert.Contains(t, middle, `href="/vendors?page=3">Next</a>`)

	last := f.get("/vendors?page=3").Body.String()
	assert.Contains(t, last, "Page 3 of 3")
	assert.Contains(t, last, `<button class="btn btn-secondary" disabled>Next</button>`)
	assert.Contains(t, last, "Vendor 24")
}

func TestUI_PageBeyondTheLastRedirects(t *testing.T) {
	f := newUIWithAPI(t)
	f.seed(t, 12)

	rec := f.get("/vendors?page=7")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/vendors?page=2", rec.Header().Get("Location"))
}

func TestUI_InvalidPageFallsBackToFirst(t *testing.T) {
	f := newUIWithAPI(t)
	f.seed(t, 12)

	body := f.get("/vendors?page=abc").Body.String()
	assert.Contains(t, body, "Page 1 of 2")
}

func TestUI_VendorFieldsAreEscaped(t *testing.T) {
	f := newUIWithAPI(t)
	_, err := f.client.CreateVendor(context.Background(), validPayload("<b>Bold</b>"))
	require.NoError(t, err)

	body := f.get("/vendors").Body.String()
	assert.Contains(t, body, "&lt;b&gt;Bold&lt;/b&gt;")
	assert.NotContains(t, body, "<b>Bold</b>")
}

func TestUI_NewForm(t *testing.T) {
	f := newUIWithAPI(t)

	rec := f.get("/vendors/new")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Add New Vendor")
	assert.Contains(t, body, `action="/vendors"`)
	assert.Contains(t, body, "Create Vendor")
	for _, name := range []string{"vendorName", "bankAccountNo", "bankName", "addressLine1", "addressLine2", "city", "country", "zipCode"} {
		assert.Contains(t, body, `name="`+name+`"`)
	}
}

func TestUI_Create(t *testing.T) {
	f := newUIWithAPI(t)

	rec := f.post("/vendors", validForm("Acme"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/vendors", rec.Header().Get("Location"))

	page, err := f.client.ListVendors(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Vendors, 1)
	assert.Equal(t, "Acme", page.Vendors[0].VendorName)
}

func TestUI_CreateShowsFieldErrors(t *testing.T) {
	f := newUIWithAPI(t)

	form := validForm("Acme")
	form.Del("bankName")
	form.Set("city", "Lusaka")
	rec := f.post("/vendors", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to save vendor: Validation error: bankName is required")
	assert.Contains(t, body, `<span class="field-error">bankName is required</span>`)
	// Entered values survive the failed submission.
	assert.Contains(t, body, `value="Acme"`)
	assert.Contains(t, body, `value="Lusaka"`)

	page, err := f.client.ListVendors(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Vendors)
}

func TestUI_EditForm(t *testing.T) {
	f := newUIWithAPI(t)
	v := f.seed(t, 1)[0]

	rec := f.get("/vendors/edit/" + v.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Vendor")
	assert.Contains(t, body, `action="/vendors/edit/`+v.ID+`"`)
	assert.Contains(t, body, `value="Vendor 00"`)
	assert.Contains(t, body, "Update Vendor")
}

func TestUI_EditFormUnknownVendor(t *testing.T) {
	f := newUIWithAPI(t)

	rec := f.get("/vendors/edit/" + uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load vendor: Vendor not found")

	rec = f.get("/vendors/edit/bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid vendor ID")
}

func TestUI_Update(t *testing.T) {
	f := newUIWithAPI(t)
	v := f.seed(t, 1)[0]

	form := validForm("Acme Renamed")
	form.Set("country", "Zambia")
	rec := f.post("/vendors/edit/"+v.ID, form)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := f.client.GetVendor(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", got.VendorName)
	assert.Equal(t, "Zambia", got.Country)
}

func TestUI_UpdateValidationKeepsRecord(t *testing.T) {
	f := newUIWithAPI(t)
	v := f.seed(t, 1)[0]

	rec := f.post("/vendors/edit/"+v.ID, validForm("   "))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "vendorName must not be blank")
	assert.Contains(t, rec.Body.String(), "Update Vendor")

	got, err := f.client.GetVendor(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vendor 00", got.VendorName)
}

func TestUI_DeleteConfirmationNamesTheVendor(t *testing.T) {
	f := newUIWithAPI(t)
	v := f.seed(t, 1)[0]

	rec := f.get("/vendors/" + v.ID + "/delete?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Are you sure you want to delete vendor &quot;Vendor 00&quot;?")
	assert.Contains(t, body, `action="/vendors/`+v.ID+`/delete"`)
	assert.Contains(t, body, `name="page" value="2"`)
	assert.Contains(t, body, `href="/vendors?page=2"`)

	// Showing the confirmation must not delete anything.
	_, err := f.client.GetVendor(context.Background(), v.ID)
	assert.NoError(t, err)
}

func TestUI_Delete(t *testing.T) {
	f := newUIWithAPI(t)
	v := f.seed(t, 1)[0]

	rec := f.post("/vendors/"+v.ID+"/delete", url.Values{"page": {"1"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/vendors?page=1", rec.Header().Get("Location"))

	_, err := f.client.GetVendor(context.Background(), v.ID)
	assert.True(t, vendorclient.IsNotFound(err))
}

func TestUI_DeleteUnknownVendorShowsError(t *testing.T) {
	f := newUIWithAPI(t)
	f.seed(t, 2)

	rec := f.post("/vendors/"+uuid.NewString()+"/delete", url.Values{"page": {"1"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to delete vendor: Vendor not found")
	// The refreshed list is still shown.
	assert.Contains(t, body, "Vendor 01")
}

func TestUI_APIDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	f := newUI(t, "http://"+addr+"/api")

	rec := f.get("/vendors")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to fetch vendors: "+vendorclient.GenericNetworkMessage)
	assert.NotContains(t, body, "<table")
	assert.NotContains(t, body, "No vendors found.")

	rec = f.post("/vendors", validForm("Acme"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to save vendor: "+vendorclient.GenericNetworkMessage)
}

func TestUI_LegacyListAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id": "64b7f0c2a1b2c3d4e5f60708", "vendorName": "Legacy One", "bankAccountNo": "1", "bankName": "B"},
			{"_id": "64b7f0c2a1b2c3d4e5f60709", "vendorName": "Legacy Two", "bankAccountNo": "2", "bankName": "B"}
		]`))
	}))
	t.Cleanup(srv.Close)
	f := newUI(t, srv.URL+"/api")

	rec := f.get("/vendors")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Legacy One")
	assert.Contains(t, body, "Legacy Two")
	assert.Contains(t, body, `href="/vendors/edit/64b7f0c2a1b2c3d4e5f60708"`)
	assert.NotContains(t, body, "pagination")
}
