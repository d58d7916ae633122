package telegraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()

		if header.Filename != "pic.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("read upload: %v", err)
		}
		if string(data) != "fake image bytes" {
			t.Errorf("uploaded body = %q", data)
		}

		fmt.Fprint(w, `[{"src":"/file/abcdef.jpg"}]`)
	}))
	t.Cleanup(srv.Close)

	client := New(WithUploadURL(srv.URL + "/upload"))
	url, err := client.Upload(context.Background(), "pic.jpg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if want := srv.URL + "/file/abcdef.jpg"; url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}

func TestUploadErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":"File type invalid"}`)
	}))
	t.Cleanup(srv.Close)

	client := New(WithUploadURL(srv.URL + "/upload"))
	_, err := client.Upload(context.Background(), "pic.exe", strings.NewReader("nope"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "File type invalid" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestUploadHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := New(WithUploadURL(srv.URL + "/upload"))
	_, err := client.Upload(context.Background(), "pic.jpg", strings.NewReader("x"))

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d", httpErr.StatusCode)
	}
}
