// Package loader reads the input document from a local file or an HTTP(S)
// URL. It only acquires bytes; decoding belongs to codec.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/apisnip/apisnip/internal/codec"
)

const fetchTimeout = 30 * time.Second

// Source is the raw input document plus what the loader learned about it.
type Source struct {
	Location string
	Data     []byte
	Format   codec.Format
}

// Load reads the document at location, fetching over HTTP when the location
// is a URL and reading from disk otherwise.
func Load(ctx context.Context, location string) (*Source, error) {
	var data []byte
	var err error

	if isURL(location) {
		data, err = fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
		if err != nil {
			err = fmt.Errorf("reading spec file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	return &Source{
		Location: location,
		Data:     data,
		Format:   codec.DetectFormat(location, data),
	}, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spec: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching spec: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}
