package telegraph

import (
	"context"
	"fmt"
	"strings"
)

// Account is a Telegraph account. AccessToken and AuthURL are only
// present on responses to createAccount and revokeAccessToken.
type Account struct {
	ShortName   string `json:"short_name,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	AuthURL     string `json:"auth_url,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
}

// CreateAccountRequest holds the parameters for CreateAccount. ShortName
// is required; the author fields become the defaults for new pages.
type CreateAccountRequest struct {
	ShortName  string `json:"short_name"`
	AuthorName string `json:"author_name,omitempty"`
	AuthorURL  string `json:"author_url,omitempty"`
}

// CreateAccount creates a new account and attaches its access token to
// the client.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	if strings.TrimSpace(req.ShortName) == "" {
		return nil, fmt.Errorf("telegraph: createAccount: short_name is required")
	}

	var account Account
	if err := c.request(ctx, "createAccount", req, &account); err != nil {
		return nil, err
	}
	c.SetAccessToken(account.AccessToken)
	return &account, nil
}

// EditAccountRequest holds the optional fields for EditAccountInfo.
// Empty fields are left unchanged on the account.
type EditAccountRequest struct {
	ShortName  string `json:"short_name,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	AuthorURL  string `json:"author_url,omitempty"`
}

type editAccountParams struct {
	AccessToken string `json:"access_token"`
	EditAccountRequest
}

// EditAccountInfo updates account fields and returns the updated account.
func (c *Client) EditAccountInfo(ctx context.Context, req EditAccountRequest) (*Account, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var account Account
	err = c.request(ctx, "editAccountInfo", editAccountParams{
		AccessToken:        token,
		EditAccountRequest: req,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// accountFields is the full field selection for getAccountInfo.
var accountFields = []string{"short_name", "author_name", "author_url", "auth_url", "page_count"}

type accountInfoParams struct {
	AccessToken string   `json:"access_token"`
	Fields      []string `json:"fields,omitempty"`
}

// GetAccountInfo fetches account fields. With no arguments every field is
// requested.
func (c *Client) GetAccountInfo(ctx context.Context, fields ...string) (*Account, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = accountFields
	}

	var account Account
	err = c.request(ctx, "getAccountInfo", accountInfoParams{
		AccessToken: token,
		Fields:      fields,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

type tokenParams struct {
	AccessToken string `json:"access_token"`
}

// RevokeAccessToken invalidates the current token, attaches the
// replacement to the client and returns it together with a fresh
// auth_url.
func (c *Client) RevokeAccessToken(ctx context.Context) (*Account, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var account Account
	if err := c.request(ctx, "revokeAccessToken", tokenParams{AccessToken: token}, &account); err != nil {
		return nil, err
	}
	c.SetAccessToken(account.AccessToken)
	return &account, nil
}
