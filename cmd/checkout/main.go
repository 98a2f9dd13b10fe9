// Package main is a command-line checkout runner. It drives a full payment
// against a running gateway server: card validation, tokenization, payment
// method commit and pay-in. Intended for sandbox smoke tests.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"payflow/internal/client"
	"payflow/internal/models"
	"payflow/internal/services/payin"
)

func main() {
	var (
		gatewayURL = flag.String("gateway", "http://localhost:3000", "gateway server base URL")
		token      = flag.String("token", "", "bearer token, empty for guest checkout")
		orderID    = flag.Uint("order", 1, "order id to pay")
		amount     = flag.Float64("amount", 10.00, "amount in major units")
		number     = flag.String("card", "4970101122334406", "card number")
		expMonth   = flag.String("exp-month", "12", "expiry month (MM)")
		expYear    = flag.String("exp-year", "29", "expiry year (YY)")
		cvv        = flag.String("cvv", "123", "security code")
		email      = flag.String("email", "buyer@example.com", "billing email")
	)
	flag.Parse()

	billing := models.BillingInformation{
		FirstName:    "Test",
		LastName:     "Buyer",
		Email:        *email,
		AddressLine1: "1 Main Street",
		City:         "Paris",
		PostalCode:   "75001",
		CountryCode:  "FR",
		Nationality:  "FR",
		DateOfBirth:  "1990-01-01",
	}
	card := client.CardDetails{
		Number:       *number,
		ExpiryMonth:  *expMonth,
		ExpiryYear:   *expYear,
		SecurityCode: *cvv,
	}

	if cardType, err := client.ValidateCard(card); err != nil {
		log.Fatalf("card rejected: %v", err)
	} else {
		fmt.Printf("card accepted: %s\n", cardType.DisplayName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	flow := client.NewFlow(client.NewClient(*gatewayURL, *token))
	outcome, err := flow.Checkout(ctx, *orderID, *amount, billing, card)
	if err != nil {
		log.Fatalf("checkout failed: %v", err)
	}

	switch outcome.Status {
	case payin.StatusSucceeded:
		fmt.Printf("payment %d completed\n", outcome.PaymentID)
	case payin.StatusCreated:
		fmt.Printf("3-D Secure required, open in a browser:\n%s\n", outcome.SecureModeURL)
	case payin.StatusFailed:
		fmt.Printf("payment declined: %s %s\n", outcome.Code, outcome.Message)
		os.Exit(1)
	default:
		fmt.Printf("payment errored: %s\n", outcome.Message)
		os.Exit(1)
	}
}
