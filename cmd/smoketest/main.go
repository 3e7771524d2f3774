// Command smoketest exercises a running vendor API end to end: health, list,
// create, update, get and delete.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
	"github.com/georgemunganga/printa-vendors/internal/modules/vendorclient"
)

func main() {
	apiURL := flag.String("api", "http://localhost:5000/api", "Base URL of the vendor API")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall time limit")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, vendorclient.New(*apiURL, nil)); err != nil {
		log.Printf("API test failed: %s", vendorclient.Message(err))
		os.Exit(1)
	}
	fmt.Println("All API tests passed!")
}

func run(ctx context.Context, client vendorclient.Client) error {
	fmt.Println("Testing Vendor Management API...")

	fmt.Println("1. Testing health endpoint...")
	if err := client.Health(ctx); err != nil {
		return err
	}

	fmt.Println("2. Testing get vendors...")
	page, err := client.ListVendors(ctx, 1, vendor.DefaultLimit)
	if err != nil {
		return err
	}
	fmt.Printf("   %d vendors across %d page(s)\n", page.TotalVendors, page.TotalPages)

	fmt.Println("3. Testing create vendor...")
	payload := vendor.Payload{
		VendorName:    "Test Vendor",
		BankAccountNo: "1234567890",
		BankName:      "Test Bank",
		AddressLine1:  "Test Address 1",
		AddressLine2:  "Test Address 2",
		City:          "Test City",
		Country:       "Test Country",
		ZipCode:       "12345",
	}
	created, err := client.CreateVendor(ctx, payload)
	if err != nil {
		return err
	}
	fmt.Printf("   created %s\n", created.ID)

	fmt.Println("4. Testing update vendor...")
	payload.VendorName = "Updated Test Vendor"
	if _, err := client.UpdateVendor(ctx, created.ID, payload); err != nil {
		return err
	}

	fmt.Println("5. Testing get single vendor...")
	got, err := client.GetVendor(ctx, created.ID)
	if err != nil {
		return err
	}
	if got.VendorName != payload.VendorName {
		return fmt.Errorf("vendor %s has name %q after update, want %q", got.ID, got.VendorName, payload.VendorName)
	}

	fmt.Println("6. Testing delete vendor...")
	msg, err := client.DeleteVendor(ctx, created.ID)
	if err != nil {
		return err
	}
	fmt.Printf("   %s\n", msg)

	if _, err := client.GetVendor(ctx, created.ID); !vendorclient.IsNotFound(err) {
		return fmt.Errorf("vendor %s still resolves after delete (err: %v)", created.ID, err)
	}
	return nil
}
