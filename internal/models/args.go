package models

import "github.com/shopspring/decimal"

type ListArgs struct {
	Base string
}

type ExchangeArgs struct {
	Amount   decimal.Decimal
	Base     string
	Currency string
}

// HistoryArgs.Days is the span in days between the first and the last
// requested date, already shortened by one from what the user typed.
type HistoryArgs struct {
	Base     string
	Currency string
	Days     int
}
