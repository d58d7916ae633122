package telegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// uploadResult is the minimal response shape of the upload endpoint:
// either a list of stored file paths or an error message.
type uploadResult []struct {
	Src string `json:"src"`
}

type uploadError struct {
	Error string `json:"error"`
}

// UploadFile reads the file at path and uploads it, returning the
// absolute URL of the stored copy.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("telegraph: upload: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	return c.Upload(ctx, filepath.Base(path), f)
}

// Upload sends one file as multipart form data to the upload endpoint
// and returns the absolute URL of the stored copy.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("telegraph: upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("telegraph: upload: read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("telegraph: upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("telegraph: upload: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("telegraph: upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // close error irrelevant

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: c.uploadURL}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("telegraph: upload: read response: %w", err)
	}

	var files uploadResult
	if err := json.Unmarshal(data, &files); err != nil {
		var apiErr uploadError
		if jsonErr := json.Unmarshal(data, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return "", &APIError{Method: "upload", Message: apiErr.Error}
		}
		return "", fmt.Errorf("telegraph: upload: decode response: %w", err)
	}
	if len(files) == 0 || files[0].Src == "" {
		return "", &APIError{Method: "upload", Message: "no file in response"}
	}

	return c.fileURL(files[0].Src), nil
}

// fileURL resolves an upload response path against the upload host.
func (c *Client) fileURL(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	base := c.uploadURL
	if idx := strings.Index(base, "://"); idx >= 0 {
		if slash := strings.Index(base[idx+3:], "/"); slash >= 0 {
			base = base[:idx+3+slash]
		}
	}
	return base + src
}
