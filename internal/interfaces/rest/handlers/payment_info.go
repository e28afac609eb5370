package handlers

import (
	"net/http"
	"time"
)

const expiryYearRange = 15

// paymentInfoPage backs the shopper card form. Posted values come back on
// validation failure so the shopper does not retype the whole card.
type paymentInfoPage struct {
	Action      string
	OrderID     string
	CardNumber  string
	CardCode    string
	ExpireMonth int
	ExpireYear  int
	Months      []int
	Years       []int
	Errors      []string
}

// GetPaymentInfo renders the card entry form for an order.
func (h *Handlers) GetPaymentInfo(w http.ResponseWriter, r *http.Request) {
	page := h.paymentInfoPage(r.URL.Query().Get("order_id"))
	h.templates.Render(w, h.logger, http.StatusOK, "payment_info", page)
}

func (h *Handlers) paymentInfoPage(orderID string) paymentInfoPage {
	now := time.Now()
	page := paymentInfoPage{
		Action:      "/Plugins/PaymentWorldPay/Checkout",
		OrderID:     orderID,
		ExpireMonth: int(now.Month()),
		ExpireYear:  now.Year(),
	}
	for m := 1; m <= 12; m++ {
		page.Months = append(page.Months, m)
	}
	for y := 0; y < expiryYearRange; y++ {
		page.Years = append(page.Years, now.Year()+y)
	}
	return page
}
