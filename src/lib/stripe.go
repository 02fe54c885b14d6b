package lib

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

func StripeInitialize() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	GetStripeClient()
}

func CreateStripeCustomer(name string, email string) (*stripe.Customer, error) {
	sc := GetStripeClient()
	cust, err := sc.V1Customers.Create(context.Background(), &stripe.CustomerCreateParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	})
	return cust, err
}

// CreateBookingInvoice raises a Stripe invoice against the client's customer
// record when a booking moves to invoiced.
func CreateBookingInvoice(customerID string, bookingCode string, amount decimal.Decimal, currency string) (*stripe.Invoice, error) {
	sc := GetStripeClient()
	inv, err := sc.V1Invoices.Create(context.Background(), &stripe.InvoiceCreateParams{
		Customer:    stripe.String(customerID),
		Description: stripe.String(fmt.Sprintf("Booking %s", bookingCode)),
		Metadata:    map[string]string{"booking_code": bookingCode},
	})
	if err != nil {
		return nil, err
	}
	_, err = sc.V1InvoiceItems.Create(context.Background(), &stripe.InvoiceItemCreateParams{
		Customer:    stripe.String(customerID),
		Invoice:     stripe.String(inv.ID),
		Amount:      stripe.Int64(amount.Shift(2).IntPart()),
		Currency:    stripe.String(currency),
		Description: stripe.String(fmt.Sprintf("Talent booking %s", bookingCode)),
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
