package commands

import "strings"

type Name string

const (
	Start    Name = "start"
	Help     Name = "help"
	List     Name = "list"
	Exchange Name = "exchange"
	History  Name = "history"
)

// Command is one incoming bot command split on whitespace.
type Command struct {
	Name Name
	Args []string
	Text string
}

// Parse splits text into a command. ok is false when text is not a /command.
// A "@botname" suffix on the keyword is dropped, the keyword itself stays
// case-sensitive.
func Parse(text string) (cmd Command, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, false
	}

	keyword := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(keyword, '@'); at >= 0 {
		keyword = keyword[:at]
	}
	if keyword == "" {
		return Command{}, false
	}

	return Command{Name: Name(keyword), Args: fields[1:], Text: text}, true
}
