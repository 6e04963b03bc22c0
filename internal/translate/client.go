// Package translate wraps the public Google translation and speech
// endpoints the assistant delegates to. Both are narrow call-and-response
// collaborators: one request, one payload, no retries.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doccrop/farm-assist/internal/common"
)

const (
	defaultTranslateURL = "https://translate.googleapis.com/translate_a/single"
	defaultTTSURL       = "https://translate.google.com/translate_tts"
)

// Client talks to the translation and speech-synthesis endpoints with a
// bounded timeout.
type Client struct {
	translateURL string
	ttsURL       string
	httpClient   *http.Client
}

// NewClient returns a client with the default endpoints.
func NewClient() *Client {
	return &Client{
		translateURL: defaultTranslateURL,
		ttsURL:       defaultTTSURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Translate renders text from src into dest. Blank input short-circuits to
// an empty string without calling the collaborator. src defaults to "auto",
// dest to "en".
func (c *Client) Translate(ctx context.Context, text, src, dest string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if src == "" {
		src = "auto"
	}
	if dest == "" {
		dest = "en"
	}

	params := url.Values{
		"client": {"gtx"},
		"sl":     {src},
		"tl":     {dest},
		"dt":     {"t"},
		"q":      {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.translateURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build translate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: translate request failed: %v", common.ErrExternalService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: translate service returned %d", common.ErrExternalService, resp.StatusCode)
	}

	// The endpoint answers with nested arrays; element zero holds the
	// translated segments as [translated, original, ...] pairs.
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: malformed translate payload: %v", common.ErrExternalService, err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty translate payload", common.ErrExternalService)
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("%w: malformed translate segments: %v", common.ErrExternalService, err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

// Speak synthesizes text as MP3 audio. Blank text falls back to "Hello"
// before synthesis; lang defaults to "en".
func (c *Client) Speak(ctx context.Context, text, lang string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "Hello"
	}
	if lang == "" {
		lang = "en"
	}

	params := url.Values{
		"ie":     {"UTF-8"},
		"client": {"tw-ob"},
		"tl":     {lang},
		"q":      {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ttsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tts request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tts request failed: %v", common.ErrExternalService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tts service returned %d", common.ErrExternalService, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read tts audio: %v", common.ErrExternalService, err)
	}
	return audio, nil
}
