package worldpay

import (
	"strconv"
	"strings"

	"github.com/shopfront/payments-worldpay/internal/domain"
)

// Hosted payment page endpoints of the classic redirect integration.
const (
	HostedLiveURL = "https://secure.worldpay.com/wcc/purchase"
	HostedTestURL = "https://secure-test.worldpay.com/wcc/purchase"
)

// FormField is one field of the auto-submitting redirect form. Order is
// preserved as submitted to the gateway.
type FormField struct {
	Name  string
	Value string
}

// RedirectForm is the POST the shopper's browser performs to reach the
// hosted payment page.
type RedirectForm struct {
	URL    string
	Fields []FormField
}

func (f *RedirectForm) add(name, value string) {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
}

// Field returns the value of a named field, or "" when absent.
func (f *RedirectForm) Field(name string) string {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// StoreContext carries the storefront details the hosted form needs.
type StoreContext struct {
	Name         string
	CurrencyCode string
	Locale       string // e.g. "en-US"
	CallbackURL  string
}

// BuildHostedForm assembles the redirect form for an order. Amounts are
// formatted as plain en-US decimals; the test-mode flag follows the sandbox
// setting ("100" sandbox, "0" live).
func BuildHostedForm(order *domain.Order, settings *domain.Settings, store StoreContext) *RedirectForm {
	form := &RedirectForm{URL: hostedURL(settings)}
	billing := order.BillingAddress

	form.add("instId", settings.InstanceID)
	form.add("cartId", strconv.FormatInt(order.ID, 10))
	if settings.PaymentMethodFilter != "" {
		form.add("paymentType", settings.PaymentMethodFilter)
	}
	if settings.CSSName != "" {
		form.add("MC_WorldPayCSSName", settings.CSSName)
	}
	form.add("currency", store.CurrencyCode)
	form.add("email", billing.Email)
	form.add("hideContact", "true")
	form.add("noLanguageMenu", "true")
	form.add("withDelivery", strconv.FormatBool(order.ShippingRequired))
	form.add("fixContact", "false")
	form.add("amount", order.Total.Format())
	form.add("desc", store.Name)
	form.add("M_UserID", strconv.FormatInt(order.CustomerID, 10))
	form.add("M_FirstName", billing.FirstName)
	form.add("M_LastName", billing.LastName)
	form.add("M_Addr1", billing.Address1)
	form.add("tel", billing.Phone)
	form.add("M_Addr2", billing.Address2)
	form.add("M_Business", billing.Company)
	form.add("lang", languageCode(store.Locale))
	form.add("M_StateCounty", billing.StateAbbrev)
	if settings.UseSandbox {
		form.add("testMode", "100")
	} else {
		form.add("testMode", "0")
	}
	form.add("postcode", billing.Zip)
	form.add("country", billing.CountryCode)
	form.add("address", billing.Address1+","+billing.CountryName)
	form.add("MC_callback", store.CallbackURL)
	form.add("name", billing.FullName())

	if order.ShippingRequired && order.ShippingAddress != nil {
		shipping := *order.ShippingAddress
		form.add("delvName", shipping.FullName())
		delvAddress := shipping.Address1
		if shipping.Address2 != "" {
			delvAddress += " " + shipping.Address2
		}
		form.add("delvAddress", delvAddress)
		form.add("delvPostcode", shipping.Zip)
		form.add("delvCountry", shipping.CountryCode)
	}

	return form
}

func hostedURL(settings *domain.Settings) string {
	if settings.UseSandbox {
		return HostedTestURL
	}
	return HostedLiveURL
}

// languageCode reduces a culture name like "en-US" to the two-letter ISO
// code the hosted page expects.
func languageCode(locale string) string {
	code, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(code)
}
