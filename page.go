package telegraph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgonek/telegraph/content"
)

// Page is a Telegraph page. Content is the raw node array and is only
// present when a call asked for return_content; use Nodes to decode it.
type Page struct {
	Path        string          `json:"path"`
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	AuthorName  string          `json:"author_name,omitempty"`
	AuthorURL   string          `json:"author_url,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	Views       int             `json:"views"`
	CanEdit     bool            `json:"can_edit,omitempty"`
}

// Nodes decodes the page content into the node union.
func (p *Page) Nodes() ([]content.Node, error) {
	if len(p.Content) == 0 {
		return nil, nil
	}
	return content.UnmarshalNodes(p.Content)
}

// PageList is one slice of an account's pages, sorted by most recently
// created.
type PageList struct {
	TotalCount int    `json:"total_count"`
	Pages      []Page `json:"pages"`
}

// PageViews is the view count for a page, optionally narrowed by a
// ViewsFilter.
type PageViews struct {
	Views int `json:"views"`
}

// CreatePageRequest holds the parameters for CreatePage. Title and
// Content are required; empty author fields fall back to the account's.
type CreatePageRequest struct {
	Title         string          `json:"title"`
	AuthorName    string          `json:"author_name,omitempty"`
	AuthorURL     string          `json:"author_url,omitempty"`
	Content       content.Content `json:"content"`
	ReturnContent bool            `json:"return_content,omitempty"`
}

type createPageParams struct {
	AccessToken string `json:"access_token"`
	CreatePageRequest
}

// CreatePage publishes a new page.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("telegraph: createPage: title is required")
	}

	var page Page
	err = c.request(ctx, "createPage", createPageParams{
		AccessToken:       token,
		CreatePageRequest: req,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

type editPageParams struct {
	AccessToken string `json:"access_token"`
	Path        string `json:"path"`
	CreatePageRequest
}

// EditPage replaces an existing page's title, content and author fields.
func (c *Client) EditPage(ctx context.Context, path string, req CreatePageRequest) (*Page, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("telegraph: editPage: path is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("telegraph: editPage: title is required")
	}

	var page Page
	err = c.request(ctx, "editPage", editPageParams{
		AccessToken:       token,
		Path:              path,
		CreatePageRequest: req,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

type getPageParams struct {
	Path          string `json:"path"`
	ReturnContent bool   `json:"return_content,omitempty"`
}

// GetPage fetches a page by path. Results are served from the read-side
// cache when one is configured.
func (c *Client) GetPage(ctx context.Context, path string, returnContent bool) (*Page, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("telegraph: getPage: path is required")
	}

	params := getPageParams{Path: path, ReturnContent: returnContent}
	data, err := c.cachedRequest(ctx, "getPage", params)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := decodeEnvelope("getPage", data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type pageListParams struct {
	AccessToken string `json:"access_token"`
	Offset      int    `json:"offset,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// GetPageList fetches up to limit pages owned by the account, skipping
// the first offset. limit 0 means the API default of 50.
func (c *Client) GetPageList(ctx context.Context, offset, limit int) (*PageList, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("telegraph: getPageList: offset must be non-negative, got %d", offset)
	}
	if limit < 0 || limit > 200 {
		return nil, fmt.Errorf("telegraph: getPageList: limit must be between 0 and 200, got %d", limit)
	}

	var list PageList
	err = c.request(ctx, "getPageList", pageListParams{
		AccessToken: token,
		Offset:      offset,
		Limit:       limit,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ViewsFilter narrows GetViews to a period. Each finer field requires the
// coarser ones: Hour needs Day needs Month needs Year. The zero filter
// returns all-time views.
type ViewsFilter struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
	Hour  int `json:"hour,omitempty"`
}

func (f ViewsFilter) validate() error {
	if f.Hour != 0 && f.Day == 0 {
		return fmt.Errorf("telegraph: getViews: hour requires day")
	}
	if f.Day != 0 && f.Month == 0 {
		return fmt.Errorf("telegraph: getViews: day requires month")
	}
	if f.Month != 0 && f.Year == 0 {
		return fmt.Errorf("telegraph: getViews: month requires year")
	}
	if f.Year != 0 && (f.Year < 2000 || f.Year > 2100) {
		return fmt.Errorf("telegraph: getViews: year %d out of range", f.Year)
	}
	if f.Month < 0 || f.Month > 12 {
		return fmt.Errorf("telegraph: getViews: month %d out of range", f.Month)
	}
	if f.Day < 0 || f.Day > 31 {
		return fmt.Errorf("telegraph: getViews: day %d out of range", f.Day)
	}
	if f.Hour < 0 || f.Hour > 24 {
		return fmt.Errorf("telegraph: getViews: hour %d out of range", f.Hour)
	}
	return nil
}

type viewsParams struct {
	Path string `json:"path"`
	ViewsFilter
}

// GetViews fetches the number of views for a page. Results are served
// from the read-side cache when one is configured.
func (c *Client) GetViews(ctx context.Context, path string, filter ViewsFilter) (*PageViews, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("telegraph: getViews: path is required")
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}

	data, err := c.cachedRequest(ctx, "getViews", viewsParams{Path: path, ViewsFilter: filter})
	if err != nil {
		return nil, err
	}

	var views PageViews
	if err := decodeEnvelope("getViews", data, &views); err != nil {
		return nil, err
	}
	return &views, nil
}
