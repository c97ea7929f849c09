package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    IntentType
		wantPayload string
		wantField   string
	}{
		// Browse
		{"list", IntentList, "", ""},
		{"browse", IntentList, "", ""},
		{"ls", IntentList, "", ""},

		// Paging
		{"next", IntentNextPage, "", ""},
		{"n", IntentNextPage, "", ""},
		{"prev", IntentPrevPage, "", ""},
		{"back", IntentPrevPage, "", ""},
		{"3", IntentPage, "3", ""},
		{"12", IntentPage, "12", ""},
		{"page 2", IntentPage, "2", ""},

		// Search and filter
		{"search pasta", IntentSearch, "pasta", ""},
		{"find chicken curry", IntentSearch, "chicken curry", ""},
		{"filter cuisine italian", IntentFilter, "italian", "cuisine"},
		{"filter cuisine=italian", IntentFilter, "italian", "cuisine"},
		{"filter difficulty Easy", IntentFilter, "Easy", "difficulty"},
		{"filter clear", IntentClearFilter, "", ""},
		{"clear", IntentClearFilter, "", ""},

		// Viewing and mutating
		{"view r_123", IntentView, "r_123", ""},
		{"show 4", IntentView, "4", ""},
		{"add", IntentAdd, "", ""},
		{"new", IntentAdd, "", ""},
		{"edit r_123", IntentEdit, "r_123", ""},
		{"delete r_123", IntentDelete, "r_123", ""},

		// Favorites
		{"save r_123", IntentSave, "r_123", ""},
		{"fav meal_52772", IntentSave, "meal_52772", ""},
		{"cookbook", IntentCookbook, "", ""},
		{"favorites", IntentCookbook, "", ""},
		{"mine", IntentMine, "", ""},

		// Catalog
		{"discover arrabiata", IntentDiscover, "arrabiata", ""},

		// Session
		{"login", IntentLogin, "", ""},
		{"register", IntentRegister, "", ""},
		{"logout", IntentLogout, "", ""},
		{"whoami", IntentProfile, "", ""},

		// Misc
		{"refresh", IntentRefresh, "", ""},
		{"help", IntentHelp, "", ""},
		{"?", IntentHelp, "", ""},
		{"quit", IntentQuit, "", ""},
		{"q", IntentQuit, "", ""},

		// Unknown
		{"flambé the cat", IntentUnknown, "flambé the cat", ""},
		{"", IntentUnknown, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, intent.Type, tt.wantType)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("input=%q: got payload %q, want %q", tt.input, intent.Payload, tt.wantPayload)
			}
			if intent.Field != tt.wantField {
				t.Errorf("input=%q: got field %q, want %q", tt.input, intent.Field, tt.wantField)
			}
		})
	}
}

func TestParseFilterUnknownField(t *testing.T) {
	parser := NewKeywordParser(logger.New(logger.LevelOff, nil))

	intent, err := parser.Parse(context.Background(), "filter color red")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Type != IntentFilter || intent.Field != "" {
		t.Fatalf("got %+v, want bare IntentFilter with no field", intent)
	}
}
