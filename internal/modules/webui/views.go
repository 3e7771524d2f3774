package webui

import (
	"strconv"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
)

// ListView is everything the vendor list page renders. A zero Vendors slice
// renders the empty state.
type ListView struct {
	Title       string
	Vendors     []*vendor.Vendor
	CurrentPage int
	TotalPages  int
	Error       string
}

// ShowPager reports whether pagination controls are rendered.
func (v ListView) ShowPager() bool { return v.TotalPages > 1 }

func (v ListView) HasPrev() bool { return v.CurrentPage > 1 }
func (v ListView) HasNext() bool { return v.CurrentPage < v.TotalPages }
func (v ListView) PrevPage() int { return v.CurrentPage - 1 }
func (v ListView) NextPage() int { return v.CurrentPage + 1 }

// FormField is one input of the vendor form.
type FormField struct {
	Name     string
	Label    string
	Value    string
	Required bool
	Error    string
}

// FormView backs both the create and the edit form.
type FormView struct {
	Title       string
	Action      string
	IsEdit      bool
	VendorID    string
	Vendor      vendor.Payload
	Error       string
	FieldErrors map[string]string
}

// Fields lists the form inputs in display order.
func (v FormView) Fields() []FormField {
	p := v.Vendor
	fields := []FormField{
		{Name: "vendorName", Label: "Vendor Name", Value: p.VendorName, Required: true},
		{Name: "bankAccountNo", Label: "Bank Account No.", Value: p.BankAccountNo, Required: true},
		{Name: "bankName", Label: "Bank Name", Value: p.BankName, Required: true},
		{Name: "addressLine1", Label: "Address Line 1", Value: p.AddressLine1},
		{Name: "addressLine2", Label: "Address Line 2", Value: p.AddressLine2, Required: true},
		{Name: "city", Label: "City", Value: p.City},
		{Name: "country", Label: "Country", Value: p.Country},
		{Name: "zipCode", Label: "Zip Code", Value: p.ZipCode},
	}
	for i := range fields {
		fields[i].Error = v.FieldErrors[fields[i].Name]
	}
	return fields
}

// ConfirmView asks the user to confirm deleting Vendor. Page is the list page
// to return to.
type ConfirmView struct {
	Title  string
	Vendor *vendor.Vendor
	Page   int
	Error  string
}

func pageURL(page int) string {
	if page < 1 {
		page = 1
	}
	return "/vendors?page=" + strconv.Itoa(page)
}
