package vendorclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
)

// Page is a normalised page of vendors, whichever shape the API answered with.
type Page struct {
	Vendors      []*vendor.Vendor
	TotalPages   int
	CurrentPage  int
	TotalVendors int64
}

// ListResponse is the decoded body of a list call. It is either a
// *PagedResult (current API) or a LegacyList (older API returning a bare array).
type ListResponse interface {
	// Normalize converts the response into a Page. requestedPage fills in the
	// current page when the response does not carry one.
	Normalize(requestedPage int) *Page
	isListResponse()
}

// PagedResult is the object-shaped list response.
type PagedResult struct {
	Vendors      []wireVendor `json:"vendors"`
	TotalPages   int          `json:"totalPages"`
	CurrentPage  int          `json:"currentPage"`
	TotalVendors int64        `json:"totalVendors"`
}

// LegacyList is the bare-array list response of older API versions. It always
// represents a single page.
type LegacyList []wireVendor

func (*PagedResult) isListResponse() {}
func (LegacyList) isListResponse()   {}

func (p *PagedResult) Normalize(requestedPage int) *Page {
	page := &Page{
		Vendors:      toVendors(p.Vendors),
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
		TotalVendors: p.TotalVendors,
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	if page.CurrentPage < 1 {
		page.CurrentPage = requestedPage
	}
	return page
}

func (l LegacyList) Normalize(int) *Page {
	return &Page{
		Vendors:      toVendors(l),
		TotalPages:   1,
		CurrentPage:  1,
		TotalVendors: int64(len(l)),
	}
}

var errEmptyListBody = errors.New("empty list response")

// DecodeListResponse discriminates the two list shapes by the first JSON token.
func DecodeListResponse(body []byte) (ListResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errEmptyListBody
	}

	switch trimmed[0] {
	case '[':
		var legacy LegacyList
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy vendor list: %w", err)
		}
		return legacy, nil
	case '{':
		var paged PagedResult
		if err := json.Unmarshal(trimmed, &paged); err != nil {
			return nil, fmt.Errorf("decode vendor page: %w", err)
		}
		return &paged, nil
	case 'n':
		// A JSON null from a broken backend is treated as an empty legacy list.
		if string(trimmed) == "null" {
			return LegacyList{}, nil
		}
	}
	return nil, fmt.Errorf("unexpected vendor list response starting with %q", trimmed[0])
}

// wireVendor accepts both the current "id" field and the "_id" field older
// API versions emitted.
type wireVendor struct {
	vendor.Vendor
	LegacyID string `json:"_id"`
}

func (w wireVendor) normalize() *vendor.Vendor {
	v := w.Vendor
	if v.ID == "" {
		v.ID = w.LegacyID
	}
	return &v
}

func toVendors(in []wireVendor) []*vendor.Vendor {
	out := make([]*vendor.Vendor, 0, len(in))
	for _, w := range in {
		out = append(out, w.normalize())
	}
	return out
}
