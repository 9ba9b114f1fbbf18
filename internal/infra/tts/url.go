// Package tts builds pronunciation URLs for a text-to-speech endpoint.
package tts

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrEmptyText = errors.New("nothing to pronounce")

// URLBuilder builds GET URLs that return spoken audio for a piece of text.
type URLBuilder struct {
	base     *url.URL
	language string
}

// NewURLBuilder validates the endpoint and returns a builder for the given language tag.
func NewURLBuilder(baseURL, language string) (*URLBuilder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse tts base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("tts base url %q: unsupported scheme", baseURL)
	}
	if language == "" {
		return nil, errors.New("tts language is required")
	}

	return &URLBuilder{base: u, language: language}, nil
}

// Language returns the configured language tag.
func (b *URLBuilder) Language() string {
	return b.language
}

// URL returns the audio URL for text.
func (b *URLBuilder) URL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}

	u := *b.base
	q := u.Query()
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", b.language)
	q.Set("q", text)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
