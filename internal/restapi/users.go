package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Users is the user-resource view of the client. It is a separate type
// because both the recipe and user resources have a Create operation.
type Users struct {
	c *Client
}

// Compile-time interface check.
var _ domain.UserStore = (*Users)(nil)

// Users returns the user-resource adapter sharing this client's
// connection settings.
func (c *Client) Users() *Users {
	return &Users{c: c}
}

// userDoc is the wire shape of a stored user. The password only exists at
// this boundary; it is stripped before a User leaves the package.
type userDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d userDoc) user() *domain.User {
	return &domain.User{ID: d.ID, Name: d.Name, Email: d.Email}
}

// FindByCredentials returns the user matching email+password, or
// domain.ErrInvalidCredentials when no user matches.
func (u *Users) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	params := url.Values{}
	params.Set("email", email)
	params.Set("password", password)

	var docs []userDoc
	if err := u.c.do(ctx, http.MethodGet, "/users?"+params.Encode(), nil, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrInvalidCredentials
	}
	return docs[0].user(), nil
}

// FindByEmail returns the user with the given email, or domain.ErrNotFound.
func (u *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	params := url.Values{}
	params.Set("email", email)

	var docs []userDoc
	if err := u.c.do(ctx, http.MethodGet, "/users?"+params.Encode(), nil, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return docs[0].user(), nil
}

// Create registers a new user and returns it without the password.
func (u *Users) Create(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	doc := userDoc{
		ID:       "u_" + uuid.NewString(),
		Name:     user.Name,
		Email:    user.Email,
		Password: password,
	}

	var created userDoc
	if err := u.c.do(ctx, http.MethodPost, "/users", &doc, &created); err != nil {
		return nil, err
	}
	u.c.log.Info("restapi: registered user %s (%s)", created.ID, created.Email)
	return created.user(), nil
}
