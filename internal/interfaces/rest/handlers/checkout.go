package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopfront/payments-worldpay/internal/application/processor"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

type cardForm struct {
	OrderID     int64  `validate:"required"`
	CardNumber  string `validate:"required,credit_card"`
	CardCode    string `validate:"required,numeric,min=3,max=4"`
	ExpireMonth int    `validate:"required,min=1,max=12"`
	ExpireYear  int    `validate:"required"`
}

type resultPage struct {
	OrderID     int64
	Status      domain.PaymentStatus
	ContinueURL string
	Errors      []string
}

// PostCheckout validates the card form and runs the payment through the
// configured integration. The hosted integration ends in an auto-submitting
// redirect form; the direct integration ends in a result page.
func (h *Handlers) PostCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	form := cardForm{
		CardNumber: r.PostFormValue("card_number"),
		CardCode:   r.PostFormValue("card_code"),
	}
	form.OrderID, _ = strconv.ParseInt(r.PostFormValue("order_id"), 10, 64)
	form.ExpireMonth, _ = strconv.Atoi(r.PostFormValue("expire_month"))
	form.ExpireYear, _ = strconv.Atoi(r.PostFormValue("expire_year"))

	settings, err := h.settings.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	// The hosted page collects the card itself; only the direct
	// integration sees card data here.
	if settings.IntegrationMode == domain.ModeDirect {
		if errs := h.validateCard(&form); len(errs) > 0 {
			h.renderCardForm(w, r, &form, errs)
			return
		}
	} else if form.OrderID == 0 {
		http.Error(w, "missing order", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetByID(r.Context(), form.OrderID)
	if err != nil {
		h.logger.Error("failed to load order", "order_id", form.OrderID, "error", err)
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	proc, err := h.selector.Processor(r.Context())
	if err != nil {
		h.logger.Error("failed to select payment processor", "error", err)
		http.Error(w, "payment method unavailable", http.StatusInternalServerError)
		return
	}

	result, err := proc.ProcessPayment(r.Context(), &processor.ProcessPaymentRequest{
		CustomerID: order.CustomerID,
		OrderTotal: order.Total,
		Card: processor.CardInput{
			Number:      form.CardNumber,
			CVV:         form.CardCode,
			ExpireMonth: form.ExpireMonth,
			ExpireYear:  form.ExpireYear,
		},
	})
	if err != nil {
		h.renderPaymentFailure(w, r, &form, err)
		return
	}

	order.Status = result.NewPaymentStatus
	if result.AuthorizationTransactionID != "" {
		order.AuthorizationTransactionID = result.AuthorizationTransactionID
		order.AuthorizationTransactionCode = result.AuthorizationTransactionCode
	}
	if result.CaptureTransactionID != "" {
		order.CaptureTransactionID = result.CaptureTransactionID
	}
	if err := h.orders.Update(r.Context(), order); err != nil {
		h.logger.Error("failed to update order", "order_id", order.ID, "error", err)
		http.Error(w, "failed to record payment", http.StatusInternalServerError)
		return
	}

	redirect, err := proc.PostProcessPayment(r.Context(), order)
	if err != nil {
		h.logger.Error("failed to build redirect form", "order_id", order.ID, "error", err)
		http.Error(w, "failed to start hosted payment", http.StatusInternalServerError)
		return
	}
	if redirect != nil {
		h.templates.Render(w, h.logger, http.StatusOK, "redirect", redirect)
		return
	}

	h.templates.Render(w, h.logger, http.StatusOK, "result", resultPage{
		OrderID:     order.ID,
		Status:      order.Status,
		ContinueURL: h.store.CheckoutCompletedURL(order.ID),
	})
}

func (h *Handlers) validateCard(form *cardForm) []string {
	err := h.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"invalid card details"}
	}

	var msgs []string
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "OrderID":
			msgs = append(msgs, "Missing order")
		case "CardNumber":
			msgs = append(msgs, "Wrong card number")
		case "CardCode":
			msgs = append(msgs, "Wrong card code")
		case "ExpireMonth":
			msgs = append(msgs, "Select card expiration month")
		case "ExpireYear":
			msgs = append(msgs, "Select card expiration year")
		}
	}
	return msgs
}

func (h *Handlers) renderCardForm(w http.ResponseWriter, r *http.Request, form *cardForm, errs []string) {
	page := h.paymentInfoPage(strconv.FormatInt(form.OrderID, 10))
	page.CardNumber = form.CardNumber
	page.CardCode = form.CardCode
	if form.ExpireMonth != 0 {
		page.ExpireMonth = form.ExpireMonth
	}
	if form.ExpireYear != 0 {
		page.ExpireYear = form.ExpireYear
	}
	page.Errors = errs
	h.templates.Render(w, h.logger, http.StatusBadRequest, "payment_info", page)
}

// renderPaymentFailure distinguishes a gateway decline, which the shopper
// can retry with another card, from everything else.
func (h *Handlers) renderPaymentFailure(w http.ResponseWriter, r *http.Request, form *cardForm, err error) {
	if gwErr, ok := worldpay.IsGatewayError(err); ok {
		h.logger.Info("payment declined",
			"order_id", form.OrderID,
			"response_code", gwErr.ResponseCode,
		)
		h.renderCardForm(w, r, form, []string{gwErr.Message})
		return
	}

	h.logger.Error("payment failed", "order_id", form.OrderID, "error", err)
	h.templates.Render(w, h.logger, http.StatusBadGateway, "result", resultPage{
		OrderID: form.OrderID,
		Errors:  []string{"The payment could not be processed. Please try again later."},
	})
}
