package decompose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sooahn/daygoal/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent endpoint to decompose a goal into
// 5-7 task stubs. Every request runs under the configured timeout; the
// upstream API has none of its own.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different endpoint. Tests use it to
// target an httptest server.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
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
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Breakdown(ctx context.Context, req Request) ([]models.TaskStub, error) {
	stubs, err := c.breakdown(ctx, req)
	if err != nil {
		return nil, &Error{Cause: err}
	}
	return stubs, nil
}

func (c *Client) breakdown(ctx context.Context, req Request) ([]models.TaskStub, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed generateResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The API reports rejected keys and quota errors as JSON too.
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != nil {
			return nil, fmt.Errorf("api status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("api status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("response contains no candidates")
	}

	return parseStubs(parsed.Candidates[0].Content.Parts[0].Text)
}

func buildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("Break the goal below into concrete task steps a single person can work through.\n\n")
	sb.WriteString(fmt.Sprintf("Goal: %s\n", req.GoalTitle))
	if req.GoalDescription != "" {
		sb.WriteString(fmt.Sprintf("Details: %s\n", req.GoalDescription))
	}
	if req.GoalContext != "" {
		sb.WriteString(fmt.Sprintf("Notes: %s\n", req.GoalContext))
	}
	sb.WriteString(fmt.Sprintf("Deadline: %s\n\n", req.Deadline))
	sb.WriteString("Produce 5-7 steps as a JSON array in exactly this shape:\n")
	sb.WriteString(`[{"title": "short title", "description": "what to do, 2-3 sentences", "difficulty": "easy|medium|hard", "estimatedHours": 2}]`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("- Each step must be small enough to finish within a day\n")
	sb.WriteString("- Spread difficulties evenly, starting with the easy ones\n")
	sb.WriteString("- Return ONLY the JSON array, no other text\n")

	return sb.String()
}

// jsonArrayPattern pulls the task array out of the model's reply, which may
// wrap it in prose or a code fence despite the prompt.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

func parseStubs(text string) ([]models.TaskStub, error) {
	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil, errors.New("no JSON task array in response")
	}

	var stubs []models.TaskStub
	if err := json.Unmarshal([]byte(match), &stubs); err != nil {
		return nil, fmt.Errorf("invalid task array: %w", err)
	}
	if len(stubs) == 0 {
		return nil, errors.New("empty task array in response")
	}

	for i := range stubs {
		if !stubs[i].Difficulty.IsValid() {
			stubs[i].Difficulty = models.DifficultyMedium
		}
	}
	return stubs, nil
}
