package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// contains http utils to deal with the remote progress document

// maxDocumentSize bounds the progress document, it is a two field object.
const maxDocumentSize = 1 << 20

// isRemote returns true if source has to be fetched over http.
func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// read returns the raw content of source, a URL or a local file.
func read(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if !isRemote(source) {
		return os.ReadFile(source)
	}
	return wget(ctx, client, source)
}

// wget performs an HTTP GET request bypassing any cache and returns the body.
func wget(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	// the progress changes as commitments come in, never serve a stale copy.
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}
