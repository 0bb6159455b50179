package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var ErrNotConfigured = errors.New("gemini api key is not configured")

// Client is a minimal generateContent client. An empty apiKey is valid:
// formatting then fails open and returns the caller's input unchanged.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func New(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithBaseURL points the client at a different endpoint; tests use it
// with an httptest server.
func NewWithBaseURL(apiKey, model, baseURL string) *Client {
	c := New(apiKey, model)
	c.baseURL = baseURL
	return c
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// FormatSongContent cleans up raw pasted lyrics/chords. It never fails the
// caller: missing key or provider errors return the input unchanged.
func (c *Client) FormatSongContent(ctx context.Context, rawText string) string {
	if !c.IsConfigured() {
		return rawText
	}

	prompt := fmt.Sprintf(`You are a professional music editor. I will provide you with raw text that contains lyrics and chords, likely copied from a website.
Please format this text to be clean and readable for a musician.

Rules:
1. Place chords strictly above the lyrics they correspond to.
2. Use standard chord notation (e.g., C, Am, F#m7).
3. If there are sections (Verse, Chorus), label them clearly in [Brackets].
4. Remove any website UI artifacts (like "Menu", "Search", "Print", advertisements).
5. Return ONLY the formatted plain text content. No markdown code blocks, just the text.

Raw Text:
%s`, rawText)

	formatted, err := c.generateContent(ctx, prompt)
	if err != nil || formatted == "" {
		log.Printf("Gemini formatting failed, returning original text: %v", err)
		return rawText
	}
	return formatted
}

// SuggestSetlistIdeas returns song title suggestions for a genre, or an
// empty list when unconfigured or on failure.
func (c *Client) SuggestSetlistIdeas(ctx context.Context, genre string) []string {
	if !c.IsConfigured() {
		return nil
	}

	prompt := fmt.Sprintf("Suggest 5 popular songs for a band playing %s music. Return only the song titles separated by commas.", genre)
	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		log.Printf("Gemini setlist suggestion failed: %v", err)
		return nil
	}

	var titles []string
	for _, part := range strings.Split(text, ",") {
		if title := strings.TrimSpace(part); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// ComposeParams describe the song to generate.
type ComposeParams struct {
	Key        string `json:"key"`
	Scale      string `json:"scale"`
	Style      string `json:"style"`
	Mood       string `json:"mood"`
	Speed      string `json:"speed"`
	Complexity string `json:"complexity"`
	Topics     string `json:"topics"`
}

// ComposeSong generates a full song body. Unlike formatting there is no
// sensible fallback, so an unconfigured client is an error.
func (c *Client) ComposeSong(ctx context.Context, params ComposeParams) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	prompt := fmt.Sprintf(`Act as a professional songwriter and composer. I need you to compose a complete song.

Parameters:
- Key: %s %s
- Style/Genre: %s
- Mood: %s
- Tempo: %s
- Harmonic Complexity: %s
- Lyrical Themes/Keywords: %s

Instructions:
1. Create a full song structure (Intro, Verse 1, Chorus, Verse 2, Bridge, Chorus, Outro).
2. Place chords strictly above the lyrics they correspond to.
3. Label sections clearly in [Brackets].
4. Return ONLY the plain text of the song. No markdown code blocks.`,
		params.Key, params.Scale, params.Style, params.Mood,
		params.Speed, params.Complexity, params.Topics)

	return c.generateContent(ctx, prompt)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
