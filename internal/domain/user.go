package domain

// User is an authenticated account. The password is only ever carried on
// registration and login requests; it is never retained client-side after
// authentication.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FavoritesIndex maps user id -> set of favorited recipe ids. It is stored
// as one shared backend document and replaced wholesale on every toggle.
// Membership is the only payload; the boolean is always true.
type FavoritesIndex map[string]map[string]bool

// Has reports whether the user has favorited the recipe. Absent user keys
// and absent recipe keys both read as false.
func (f FavoritesIndex) Has(userID, recipeID string) bool {
	return f[userID][recipeID]
}

// Set adds or removes a membership entry, creating the user's set on first
// use and dropping it again when it empties.
func (f FavoritesIndex) Set(userID, recipeID string, favorited bool) {
	if !favorited {
		delete(f[userID], recipeID)
		if len(f[userID]) == 0 {
			delete(f, userID)
		}
		return
	}
	if f[userID] == nil {
		f[userID] = make(map[string]bool)
	}
	f[userID][recipeID] = true
}

// IDs returns the user's favorited recipe ids in unspecified order.
func (f FavoritesIndex) IDs(userID string) []string {
	set := f[userID]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
