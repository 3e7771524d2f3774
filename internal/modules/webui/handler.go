// Package webui serves the server-rendered vendor pages. Every page talks to
// the vendor API through vendorclient; it keeps no state between requests.
package webui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
	"github.com/georgemunganga/printa-vendors/internal/modules/vendorclient"
	"github.com/go-chi/chi/v5"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

const (
	listPageSize = 10
	layout       = "layouts/main"
)

// Handler exposes the vendor UI pages.
type Handler struct {
	client vendorclient.Client
	views  *html.Engine
}

// NewHandler parses the page templates and returns a handler backed by client.
func NewHandler(client vendorclient.Client) (*Handler, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("pageURL", pageURL)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &Handler{client: client, views: engine}, nil
}

// RegisterRoutes mounts the vendor pages under /vendors and redirects / there.
func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/vendors", http.StatusFound)
	})
	router.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.listVendors)
		r.Post("/", h.createVendor)
		r.Get("/new", h.newVendorForm)
		r.Get("/edit/{id}", h.editVendorForm)
		r.Post("/edit/{id}", h.updateVendor)
		r.Get("/{id}/delete", h.confirmDelete)
		r.Post("/{id}/delete", h.deleteVendor)
	})
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r.URL.Query().Get("page"))
	view := h.loadList(r.Context(), page)

	// A delete can leave the user past the last page; send them to it.
	if view.Error == "" && len(view.Vendors) == 0 && page > view.TotalPages {
		http.Redirect(w, r, pageURL(view.TotalPages), http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "vendors/list", view)
}

// loadList fetches one page. On failure the view carries the error and no
// vendors, never the previous page's data.
func (h *Handler) loadList(ctx context.Context, page int) ListView {
	view := ListView{Title: "Vendors", CurrentPage: page, TotalPages: 1}
	result, err := h.client.ListVendors(ctx, page, listPageSize)
	if err != nil {
		log.Printf("webui: list vendors page %d: %v", page, err)
		view.Error = "Failed to fetch vendors: " + vendorclient.Message(err)
		return view
	}
	view.Vendors = result.Vendors
	view.CurrentPage = result.CurrentPage
	view.TotalPages = result.TotalPages
	return view
}

func (h *Handler) newVendorForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "vendors/form", FormView{Title: "Add New Vendor", Action: "/vendors"})
}

func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	view := FormView{Title: "Add New Vendor", Action: "/vendors"}
	if err := r.ParseForm(); err != nil {
		view.Error = "Invalid form submission"
		h.render(w, http.StatusBadRequest, "vendors/form", view)
		return
	}
	view.Vendor = payloadFromForm(r)

	if _, err := h.client.CreateVendor(r.Context(), view.Vendor); err != nil {
		h.renderFormError(w, view, "Failed to save vendor", err)
		return
	}
	http.Redirect(w, r, "/vendors", http.StatusSeeOther)
}

func (h *Handler) editVendorForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view := editView(id)

	v, err := h.client.GetVendor(r.Context(), id)
	if err != nil {
		h.renderFormError(w, view, "Failed to load vendor", err)
		return
	}
	view.Vendor = v.Payload()
	h.render(w, http.StatusOK, "vendors/form", view)
}

func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view := editView(id)
	if err := r.ParseForm(); err != nil {
		view.Error = "Invalid form submission"
		h.render(w, http.StatusBadRequest, "vendors/form", view)
		return
	}
	view.Vendor = payloadFromForm(r)

	if _, err := h.client.UpdateVendor(r.Context(), id, view.Vendor); err != nil {
		h.renderFormError(w, view, "Failed to save vendor", err)
		return
	}
	http.Redirect(w, r, "/vendors", http.StatusSeeOther)
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	view := ConfirmView{Title: "Delete Vendor", Page: pageParam(r.URL.Query().Get("page"))}

	v, err := h.client.GetVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("webui: load vendor for delete: %v", err)
		view.Error = "Failed to load vendor: " + vendorclient.Message(err)
		h.render(w, statusFor(err), "vendors/confirm_delete", view)
		return
	}
	view.Vendor = v
	h.render(w, http.StatusOK, "vendors/confirm_delete", view)
}

func (h *Handler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r.FormValue("page"))

	if _, err := h.client.DeleteVendor(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.Printf("webui: delete vendor: %v", err)
		view := h.loadList(r.Context(), page)
		view.Error = "Failed to delete vendor: " + vendorclient.Message(err)
		h.render(w, statusFor(err), "vendors/list", view)
		return
	}
	http.Redirect(w, r, pageURL(page), http.StatusSeeOther)
}

func (h *Handler) renderFormError(w http.ResponseWriter, view FormView, prefix string, err error) {
	log.Printf("webui: %s: %v", prefix, err)
	view.Error = prefix + ": " + vendorclient.Message(err)
	var apiErr *vendorclient.APIError
	if errors.As(err, &apiErr) {
		view.FieldErrors = apiErr.FieldMessages()
	}
	h.render(w, statusFor(err), "vendors/form", view)
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.views.Render(&buf, name, data, layout); err != nil {
		log.Printf("webui: render %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func editView(id string) FormView {
	return FormView{Title: "Edit Vendor", Action: "/vendors/edit/" + id, IsEdit: true, VendorID: id}
}

func payloadFromForm(r *http.Request) vendor.Payload {
	return vendor.Payload{
		VendorName:    r.PostForm.Get("vendorName"),
		BankAccountNo: r.PostForm.Get("bankAccountNo"),
		BankName:      r.PostForm.Get("bankName"),
		AddressLine1:  r.PostForm.Get("addressLine1"),
		AddressLine2:  r.PostForm.Get("addressLine2"),
		City:          r.PostForm.Get("city"),
		Country:       r.PostForm.Get("country"),
		ZipCode:       r.PostForm.Get("zipCode"),
	}
}

// statusFor passes API client errors through and reports unreachable APIs
// as a bad gateway.
func statusFor(err error) int {
	var apiErr *vendorclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if errors.Is(err, vendorclient.ErrEmptyID) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func pageParam(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
