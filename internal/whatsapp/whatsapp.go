// Package whatsapp builds the wa.me deep links that carry all purchase
// intent out of the storefront.
package whatsapp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bunny-store/internal/domain"
)

// Link builds a messaging deep link for the given number and prefilled
// message. A leading + on the number is stripped, as wa.me expects digits.
func Link(number, message string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// PurchaseMessage is the prefilled text for buying a specific plan.
func PurchaseMessage(p domain.Product, plan domain.Plan) string {
	return fmt.Sprintf(
		"Hello! I want to purchase this product:\n\n"+
			"📦 *Product:* %s\n"+
			"📋 *Selected Plan:* %s\n"+
			"💰 *Price:* Rs. %s\n"+
			"⏰ *Duration:* %s\n\n"+
			"Please provide me with payment details.",
		p.Title, plan.Title, formatPrice(plan.Price), plan.DurationLabel(),
	)
}

// InquiryMessage is the prefilled text for asking about a product that has
// no plan selected, including contact-for-price products.
func InquiryMessage(p domain.Product) string {
	return fmt.Sprintf(
		"Hello! I'm interested in this product:\n\n"+
			"📦 *Product:* %s\n\n"+
			"Please share the details and pricing.",
		p.Title,
	)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
