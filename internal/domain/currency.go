package domain

// Currency is an exchange-rate entry from the storefront's currency table.
// UsdRate is the USD value of one unit of the currency.
type Currency struct {
	Code      string
	UsdRate   float64
	IsPrimary bool
}
