package commands

import "strings"

var usage = []struct {
	syntax      string
	description string
}{
	{
		"list <base>",
		"returns list of all available rates for `base`",
	},
	{
		"exchange {amount} {base} to {currency}",
		"converts `amount` of `base` to `currency`\nex.: /exchange 10 USD to CAD",
	},
	{
		"history {base} {currency} for {N} days",
		"return an image graph chart with the exchange rate of the selected `base`/`currency` for the last `N` days\nex.: /history USD CAD for 7 days",
	},
}

// HelpText is the reply to /help and /start.
func HelpText() string {
	var b strings.Builder
	b.WriteString("The following commands are available: \n\n")
	for _, u := range usage {
		b.WriteString("/" + u.syntax + "\n")
		b.WriteString(u.description + "\n\n")
	}
	b.WriteString("Notes: 'USD' used by default if `base` not set.")
	return b.String()
}
