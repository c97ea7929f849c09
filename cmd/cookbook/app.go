package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/app"
	"github.com/hammamikhairi/cookbook/internal/conversation"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

type cliApp struct {
	app    *app.App
	parser *conversation.KeywordParser
	log    *logger.Logger
	ui     *display.UI

	form     *form           // active multi-step input, nil when idle
	lastPage []domain.Recipe // rows shown by the last listing, for numeric view
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintHint("Loading recipes...")
	if err := a.app.Refresh(ctx); err != nil {
		a.ui.PrintError(fmt.Sprintf("Loading recipes failed: %v", err))
	}
	a.showList(ctx)

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// An active form consumes input until it completes or is
		// cancelled.
		if a.form != nil {
			if strings.EqualFold(input, "cancel") {
				a.form = nil
				a.ui.PrintHint("Cancelled.")
				continue
			}
			a.feedForm(ctx, input)
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q field=%q)", intent.Type, intent.Payload, intent.Field)
		if a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent dispatches one command; returns true to quit.
func (a *cliApp) handleIntent(ctx context.Context, intent *conversation.Intent) bool {
	switch intent.Type {
	case conversation.IntentHelp:
		a.showHelp()
	case conversation.IntentList:
		a.showList(ctx)
	case conversation.IntentSearch:
		a.app.SetQuery(intent.Payload)
		a.showList(ctx)
	case conversation.IntentFilter:
		a.applyFilter(ctx, intent)
	case conversation.IntentClearFilter:
		a.app.ClearFilter()
		a.ui.PrintHint("Filters cleared.")
		a.showList(ctx)
	case conversation.IntentPage:
		if n, err := strconv.Atoi(intent.Payload); err == nil {
			a.app.GoToPage(n)
		}
		a.showList(ctx)
	case conversation.IntentNextPage:
		a.app.NextPage()
		a.showList(ctx)
	case conversation.IntentPrevPage:
		a.app.PrevPage()
		a.showList(ctx)
	case conversation.IntentView:
		a.showRecipe(ctx, intent.Payload)
	case conversation.IntentAdd:
		a.startAddForm()
	case conversation.IntentEdit:
		a.startEditForm(ctx, intent.Payload)
	case conversation.IntentDelete:
		a.deleteRecipe(ctx, intent.Payload)
	case conversation.IntentSave:
		a.toggleFavorite(ctx, intent.Payload)
	case conversation.IntentCookbook:
		a.showCookbook(ctx)
	case conversation.IntentMine:
		a.showMine(ctx)
	case conversation.IntentDiscover:
		a.discover(ctx, intent.Payload)
	case conversation.IntentLogin:
		a.startLoginForm()
	case conversation.IntentRegister:
		a.startRegisterForm()
	case conversation.IntentLogout:
		a.logout()
	case conversation.IntentProfile:
		a.showProfile()
	case conversation.IntentRefresh:
		a.ui.PrintHint("Refreshing...")
		if err := a.app.Refresh(ctx); err != nil {
			a.ui.PrintError(fmt.Sprintf("Refresh failed: %v", err))
			return false
		}
		a.app.RefreshCatalog(ctx)
		a.showList(ctx)
	case conversation.IntentQuit:
		a.ui.PrintHint("Bye.")
		return true
	case conversation.IntentUnknown:
		if intent.Payload != "" {
			a.ui.PrintHint(fmt.Sprintf("Didn't catch that (%q). Type 'help' for commands.", intent.Payload))
		}
	}
	return false
}

// resolveID turns a user reference into a recipe id: either a row number
// from the last listing or a literal id.
func (a *cliApp) resolveID(ref string) (string, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(a.lastPage) {
			return a.lastPage[n-1].ID, true
		}
		return "", false
	}
	return ref, true
}

// ── Browsing ─────────────────────────────────────────────────────

// favoriteMarks reads the favorites index once for a listing; marking the
// rows from the set costs one backend read instead of one per row.
func (a *cliApp) favoriteMarks(ctx context.Context) map[string]bool {
	marks, err := a.app.FavoriteMarks(ctx)
	if err != nil {
		a.log.Warn("loading favorites index: %v", err)
		return nil
	}
	return marks
}

func (a *cliApp) showList(ctx context.Context) {
	v := a.app.CurrentView()
	a.lastPage = v.Page.Items

	if v.Matched == 0 {
		if v.Filter.IsZero() {
			a.ui.PrintHint("No recipes yet. Type 'add' to create one.")
		} else {
			a.ui.PrintHint("No recipes match the current filters. Type 'clear' to reset them.")
		}
		return
	}

	a.ui.PrintHeading(fmt.Sprintf("Recipes — page %d/%d (%d of %d shown)",
		v.Page.Number, v.Page.TotalPages, len(v.Page.Items), v.Matched))
	a.ui.Println("")
	marks := a.favoriteMarks(ctx)
	for i := range v.Page.Items {
		r := &v.Page.Items[i]
		a.ui.PrintRecipeRow(i+1, r, marks[r.ID])
	}
	a.ui.Println("")
	a.ui.PrintHint("view <n> for details · next/prev or a page number to navigate")
}

func (a *cliApp) showRecipe(ctx context.Context, ref string) {
	id, ok := a.resolveID(ref)
	if !ok {
		a.ui.PrintError(fmt.Sprintf("No recipe %q on this page.", ref))
		return
	}

	r, err := a.app.Recipe(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.ui.PrintError("Recipe not found.")
		} else {
			a.ui.PrintError(fmt.Sprintf("Loading recipe failed: %v", err))
		}
		return
	}

	fav, _ := a.app.IsFavorite(ctx, r.ID)
	favMark := ""
	if fav {
		favMark = " ♥"
	}

	a.ui.PrintHeading(fmt.Sprintf("=== %s%s ===", r.Title, favMark))
	a.ui.PrintLine(r.Description)
	a.ui.PrintHint(fmt.Sprintf("%s · %s · %s", r.Cuisine, r.Category, r.Difficulty))
	a.ui.PrintHint(fmt.Sprintf("Prep %dm · Cook %dm · Serves %d", r.PrepTime, r.CookTime, r.Servings))
	if r.IsExternal() {
		a.ui.PrintHint("From TheMealDB (read-only)")
	}
	a.ui.PrintHint("id: " + r.ID)

	a.ui.Println("")
	a.ui.PrintHeading("Ingredients:")
	for _, ing := range r.Ingredients {
		a.ui.PrintLine(fmt.Sprintf("  - %s %s", ing.Quantity, ing.Name))
	}

	a.ui.Println("")
	a.ui.PrintHeading("Steps:")
	for i, s := range r.Steps {
		a.ui.PrintLine(fmt.Sprintf("  %d. %s", i+1, s))
	}

	a.ui.Println("")
	a.ui.PrintHint(fmt.Sprintf("save %s to favorite it", r.ID))
}

func (a *cliApp) applyFilter(ctx context.Context, intent *conversation.Intent) {
	if intent.Field == "" {
		a.ui.PrintHint("Usage: filter <cuisine|category|difficulty> <value>, or 'filter clear'.")
		if intent.Payload != "" {
			a.ui.PrintHint(fmt.Sprintf("Unknown filter field in %q.", intent.Payload))
		}
		return
	}

	f := a.app.Filter()
	switch intent.Field {
	case "cuisine":
		f.Cuisine = intent.Payload
	case "category":
		f.Category = intent.Payload
	case "difficulty":
		f.Difficulty = intent.Payload
	}
	a.app.SetFilter(f)
	a.showList(ctx)
}

func (a *cliApp) discover(ctx context.Context, term string) {
	a.ui.PrintHint(fmt.Sprintf("Searching the catalog for %q...", term))
	found, err := a.app.Discover(ctx, term)
	if err != nil {
		a.ui.PrintError(fmt.Sprintf("Catalog search failed: %v", err))
		return
	}
	if len(found) == 0 {
		a.ui.PrintHint("Nothing in the catalog matches.")
		return
	}

	a.lastPage = found
	marks := a.favoriteMarks(ctx)
	a.ui.PrintHeading(fmt.Sprintf("Catalog matches (%d):", len(found)))
	for i := range found {
		a.ui.PrintRecipeRow(i+1, &found[i], marks[found[i].ID])
	}
}

// ── Favorites ────────────────────────────────────────────────────

func (a *cliApp) toggleFavorite(ctx context.Context, ref string) {
	id, ok := a.resolveID(ref)
	if !ok {
		a.ui.PrintError(fmt.Sprintf("No recipe %q on this page.", ref))
		return
	}

	on, err := a.app.ToggleFavorite(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotSignedIn) {
			a.ui.PrintHint("Sign in first ('login') to save favorites.")
		} else {
			a.ui.PrintError(fmt.Sprintf("Saving favorite failed: %v", err))
		}
		return
	}
	if on {
		a.ui.PrintLine("Added to your cookbook. ♥")
	} else {
		a.ui.PrintLine("Removed from your cookbook.")
	}
}

func (a *cliApp) showCookbook(ctx context.Context) {
	favs, err := a.app.Favorites(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotSignedIn) {
			a.ui.PrintHint("Sign in first ('login') to see your cookbook.")
		} else {
			a.ui.PrintError(fmt.Sprintf("Loading cookbook failed: %v", err))
		}
		return
	}
	if len(favs) == 0 {
		a.ui.PrintHint("Your cookbook is empty. Use 'save <id>' while browsing.")
		return
	}

	a.lastPage = favs
	a.ui.PrintHeading(fmt.Sprintf("Your cookbook (%d):", len(favs)))
	for i := range favs {
		a.ui.PrintRecipeRow(i+1, &favs[i], true)
	}
}

func (a *cliApp) showMine(ctx context.Context) {
	mine, err := a.app.Mine(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotSignedIn) {
			a.ui.PrintHint("Sign in first ('login') to see your recipes.")
		} else {
			a.ui.PrintError(fmt.Sprintf("Loading your recipes failed: %v", err))
		}
		return
	}
	if len(mine) == 0 {
		a.ui.PrintHint("You haven't created any recipes. Type 'add' to start.")
		return
	}

	a.lastPage = mine
	marks := a.favoriteMarks(ctx)
	a.ui.PrintHeading(fmt.Sprintf("Your recipes (%d):", len(mine)))
	for i := range mine {
		a.ui.PrintRecipeRow(i+1, &mine[i], marks[mine[i].ID])
	}
}

// ── Mutations ────────────────────────────────────────────────────

func (a *cliApp) deleteRecipe(ctx context.Context, ref string) {
	id, ok := a.resolveID(ref)
	if !ok {
		a.ui.PrintError(fmt.Sprintf("No recipe %q on this page.", ref))
		return
	}

	if err := a.app.Delete(ctx, id); err != nil {
		a.printMutationError(err, "Deleting")
		return
	}
	a.ui.PrintLine("Recipe deleted.")
	a.showList(ctx)
}

func (a *cliApp) printMutationError(err error, verb string) {
	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		a.ui.PrintHint("Sign in first ('login').")
	case errors.Is(err, domain.ErrExternalRecipe):
		a.ui.PrintHint("Catalog recipes are read-only.")
	case errors.Is(err, domain.ErrNotOwner):
		a.ui.PrintHint("Only the recipe's creator can do that.")
	case errors.Is(err, domain.ErrNotFound):
		a.ui.PrintError("Recipe not found.")
	default:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				a.ui.PrintError("  - " + p)
			}
			return
		}
		a.ui.PrintError(fmt.Sprintf("%s failed: %v", verb, err))
	}
}

// ── Session ──────────────────────────────────────────────────────

func (a *cliApp) logout() {
	if err := a.app.Logout(); err != nil {
		if errors.Is(err, domain.ErrNotSignedIn) {
			a.ui.PrintHint("Not signed in.")
		} else {
			a.ui.PrintError(fmt.Sprintf("Logout failed: %v", err))
		}
		return
	}
	a.ui.PrintLine("Signed out.")
}

func (a *cliApp) showProfile() {
	u := a.app.Current()
	if u == nil {
		a.ui.PrintHint("Not signed in. Type 'login' or 'register'.")
		return
	}
	a.ui.PrintHeading("Profile")
	a.ui.PrintLine("Name:  " + u.Name)
	a.ui.PrintLine("Email: " + u.Email)
	a.ui.PrintHint("id: " + u.ID)
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Browse:")
	a.ui.PrintLine("  list / browse      Show the recipe grid")
	a.ui.PrintLine("  search <text>      Free-text search over titles and descriptions")
	a.ui.PrintLine("  filter <field> <v> Constrain by cuisine, category, or difficulty")
	a.ui.PrintLine("  clear              Drop all filters")
	a.ui.PrintLine("  next / prev / <n>  Page navigation")
	a.ui.PrintLine("  view <n|id>        Show full recipe details")
	a.ui.PrintLine("  discover <text>    Search TheMealDB catalog directly")
	a.ui.Println("")
	a.ui.PrintHeading("Your recipes (sign in required):")
	a.ui.PrintLine("  add                Create a recipe (guided)")
	a.ui.PrintLine("  edit <n|id>        Edit one of your recipes")
	a.ui.PrintLine("  delete <n|id>      Delete one of your recipes")
	a.ui.PrintLine("  save <n|id>        Toggle a favorite")
	a.ui.PrintLine("  cookbook           List your favorites")
	a.ui.PrintLine("  mine               List recipes you created")
	a.ui.Println("")
	a.ui.PrintHeading("Session:")
	a.ui.PrintLine("  login / register / logout / whoami")
	a.ui.Println("")
	a.ui.PrintLine("  refresh            Reload from the backend and the catalog")
	a.ui.PrintLine("  help               Show this message")
	a.ui.PrintLine("  quit               Exit")
	a.ui.PrintHint("  During guided input, type 'cancel' to abort.")
}
