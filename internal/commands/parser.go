package commands

import (
	"strconv"
	"strings"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultBase        = "USD"
	DefaultHistoryDays = 7
)

// ParseList reads `/list [base]`. Extra tokens are ignored.
func ParseList(args []string) models.ListArgs {
	base := DefaultBase
	if len(args) > 0 {
		base = args[0]
	}
	return models.ListArgs{Base: strings.ToUpper(base)}
}

// ParseExchange reads `/exchange {amount} [base] to {currency}`.
//
// With exactly three tokens the middle one is either the literal "to" (base
// defaults to USD) or the base itself. With more than three tokens the layout
// is amount, base, "to", currency; the "to" is not checked and anything after
// the currency is ignored.
func ParseExchange(args []string) (models.ExchangeArgs, error) {
	if len(args) < 3 {
		return models.ExchangeArgs{}, apperrors.InvalidArgument(apperrors.MsgInvalidArguments)
	}

	var rawAmount, base, currency string
	if len(args) == 3 {
		rawAmount, currency = args[0], args[2]
		base = DefaultBase
		if args[1] != "to" {
			base = args[1]
		}
	} else {
		rawAmount, base, currency = args[0], args[1], args[3]
	}

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return models.ExchangeArgs{}, err
	}

	return models.ExchangeArgs{
		Amount:   amount,
		Base:     strings.ToUpper(base),
		Currency: strings.ToUpper(currency),
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.Trim(raw, "$"))
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, apperrors.InvalidArgument(apperrors.MsgInvalidArguments)
	}
	return amount, nil
}

// ParseHistory reads `/history {base} {currency} [... N ...]`. The first
// all-digit token after the currency sets N. The origin returns both ends of a
// date range, so N points need a span of N-1 days; Days holds that span.
func ParseHistory(args []string) (models.HistoryArgs, error) {
	if len(args) < 2 {
		return models.HistoryArgs{}, apperrors.InvalidArgument(apperrors.MsgInvalidArguments)
	}

	days := DefaultHistoryDays - 1
	for _, arg := range args[2:] {
		if !isDigits(arg) {
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return models.HistoryArgs{}, apperrors.InvalidArgument(apperrors.MsgInvalidArguments)
		}
		days = max(n-1, 0)
		break
	}

	return models.HistoryArgs{
		Base:     strings.ToUpper(args[0]),
		Currency: strings.ToUpper(args[1]),
		Days:     days,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
