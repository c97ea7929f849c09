// Package conversation turns REPL input into typed commands.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

// IntentType identifies a parsed command.
type IntentType string

const (
	IntentUnknown     IntentType = "unknown"
	IntentList        IntentType = "list"
	IntentSearch      IntentType = "search"
	IntentFilter      IntentType = "filter"
	IntentClearFilter IntentType = "clear_filter"
	IntentPage        IntentType = "page"
	IntentNextPage    IntentType = "next_page"
	IntentPrevPage    IntentType = "prev_page"
	IntentView        IntentType = "view"
	IntentAdd         IntentType = "add"
	IntentEdit        IntentType = "edit"
	IntentDelete      IntentType = "delete"
	IntentSave        IntentType = "save"
	IntentCookbook    IntentType = "cookbook"
	IntentMine        IntentType = "mine"
	IntentDiscover    IntentType = "discover"
	IntentLogin       IntentType = "login"
	IntentRegister    IntentType = "register"
	IntentLogout      IntentType = "logout"
	IntentProfile     IntentType = "profile"
	IntentRefresh     IntentType = "refresh"
	IntentHelp        IntentType = "help"
	IntentQuit        IntentType = "quit"
)

// Intent is one parsed command. Payload carries the free-text remainder
// for commands that take an argument; Field carries the filter field name
// for IntentFilter.
type Intent struct {
	Type    IntentType
	Payload string
	Field   string
}

// KeywordParser matches user input to intents using keywords and simple
// patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent IntentType
}

// argCommands map a leading keyword to the intent that carries the rest
// of the line as payload.
var argCommands = []struct {
	keyword string
	intent  IntentType
}{
	{"search", IntentSearch},
	{"find", IntentSearch},
	{"view", IntentView},
	{"show", IntentView},
	{"open", IntentView},
	{"edit", IntentEdit},
	{"delete", IntentDelete},
	{"remove", IntentDelete},
	{"save", IntentSave},
	{"unsave", IntentSave},
	{"fav", IntentSave},
	{"discover", IntentDiscover},
	{"page", IntentPage},
}

// filterFields are the accepted categorical filter fields.
var filterFields = map[string]bool{
	"cuisine":    true,
	"category":   true,
	"difficulty": true,
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|recipes|browse|ls|home)$`), IntentList},
		{regexp.MustCompile(`(?i)^(next|n|>)$`), IntentNextPage},
		{regexp.MustCompile(`(?i)^(prev|previous|back|b|<)$`), IntentPrevPage},
		{regexp.MustCompile(`(?i)^(clear|reset|clear filters?)$`), IntentClearFilter},
		{regexp.MustCompile(`(?i)^(add|new|create)$`), IntentAdd},
		{regexp.MustCompile(`(?i)^(cookbook|favorites|favs|saved)$`), IntentCookbook},
		{regexp.MustCompile(`(?i)^(mine|my recipes)$`), IntentMine},
		{regexp.MustCompile(`(?i)^(login|signin|sign in)$`), IntentLogin},
		{regexp.MustCompile(`(?i)^(register|signup|sign up)$`), IntentRegister},
		{regexp.MustCompile(`(?i)^(logout|signout|sign out)$`), IntentLogout},
		{regexp.MustCompile(`(?i)^(profile|whoami|me)$`), IntentProfile},
		{regexp.MustCompile(`(?i)^(refresh|reload|sync)$`), IntentRefresh},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), IntentQuit},
	}
	return p
}

// Parse converts one line of input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &Intent{Type: IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number jumps to that page.
	if isDigits(trimmed) {
		return &Intent{Type: IntentPage, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &Intent{Type: rule.intent}, nil
		}
	}

	keyword, rest := splitCommand(trimmed)

	// "filter <field> <value>" and the "filter" / "filter clear" forms.
	if keyword == "filter" {
		return parseFilter(rest), nil
	}

	for _, c := range argCommands {
		if keyword == c.keyword && rest != "" {
			return &Intent{Type: c.intent, Payload: rest}, nil
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &Intent{Type: IntentUnknown, Payload: trimmed}, nil
}

// parseFilter handles the filter command's argument forms:
// "cuisine italian", "cuisine=italian", "clear", or nothing (which lists
// the filterable fields via the handler's usage message).
func parseFilter(rest string) *Intent {
	if rest == "" {
		return &Intent{Type: IntentFilter}
	}
	if strings.EqualFold(rest, "clear") {
		return &Intent{Type: IntentClearFilter}
	}

	field, value := splitCommand(rest)
	if eq := strings.IndexByte(field, '='); eq >= 0 {
		field, value = field[:eq], strings.TrimSpace(field[eq+1:]+" "+value)
	}
	if !filterFields[field] {
		return &Intent{Type: IntentFilter, Payload: rest}
	}
	return &Intent{Type: IntentFilter, Field: field, Payload: value}
}

// splitCommand splits off the lowercased first word.
func splitCommand(s string) (keyword, rest string) {
	parts := strings.SplitN(s, " ", 2)
	keyword = strings.ToLower(parts[0])
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return keyword, rest
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
