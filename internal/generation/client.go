package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout covers catalogue-style calls against the service.
	DefaultTimeout = 30 * time.Second
	// LongTimeout covers full entity generation, which can run well past a
	// normal request budget.
	LongTimeout = 90 * time.Second
)

// CharacterOptions is the free-form knob set a wizard sends along with a
// generation request.
type CharacterOptions struct {
	CharacterType string `json:"character_type,omitempty"`
	Role          string `json:"role,omitempty"`
	Archetype     string `json:"archetype,omitempty"`
	Personality   string `json:"personality,omitempty"`
	CustomPrompt  string `json:"custom_prompt,omitempty"`
}

// ProjectContext is what the upstream model sees of the story world.
type ProjectContext struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	Synopsis           string   `json:"synopsis,omitempty"`
	Genre              []string `json:"genre,omitempty"`
	ExistingCharacters []string `json:"existing_characters,omitempty"`
}

// GeneratedCharacter is the upstream's fully populated result. Fields beyond
// the structured ones arrive in Details and flow straight into the entity's
// open payload.
type GeneratedCharacter struct {
	Name        string                 `json:"name"`
	Role        string                 `json:"role"`
	OneLine     string                 `json:"one_line"`
	Description string                 `json:"description"`
	Tags        []string               `json:"tags"`
	Details     map[string]interface{} `json:"details"`
	// PortraitPNG carries portrait bytes when the upstream rendered one.
	PortraitPNG []byte `json:"portrait_png,omitempty"`
}

// Client handles communication with the upstream generation service
type Client struct {
	baseURL       string
	apiKey        string
	defaultClient *http.Client
	longClient    *http.Client
	limiter       *rate.Limiter
}

// NewClient creates a new generation client. limit is requests per second
// allowed against the upstream; burst absorbs short spikes.
func NewClient(baseURL, apiKey string, limit float64, burst int) *Client {
	if limit <= 0 {
		limit = 2
	}
	if burst <= 0 {
		burst = 4
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		defaultClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		longClient: &http.Client{
			Timeout: LongTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
	}
}

// Enabled reports whether an upstream service is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type generateCharacterReq struct {
	Project ProjectContext   `json:"project"`
	Options CharacterOptions `json:"options"`
}

// GenerateCharacter asks the upstream to produce a fully populated character
// for the given project context.
func (c *Client) GenerateCharacter(ctx context.Context, project ProjectContext, opts CharacterOptions) (*GeneratedCharacter, error) {
	logger := NewLogger(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(generateCharacterReq{Project: project, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	reqURL := c.baseURL + "/v1/characters/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		logger.LogError("generate_character", err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.longClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.LogError("generate_character", err)
		recordCall(duration, err)
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logger.LogWarnf("generate_character", "upstream returned status %d", resp.StatusCode)
		recordCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	recordCall(duration, nil)

	var out struct {
		Character GeneratedCharacter `json:"character"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Character.Name == "" {
		return nil, fmt.Errorf("upstream returned unnamed character")
	}

	return &out.Character, nil
}

type generateEntityReq struct {
	Project ProjectContext         `json:"project"`
	Options map[string]interface{} `json:"options"`
}

// GenerateEntity asks the upstream to produce a world-bible entity of the
// given type. The result payload is type-specific and passed along opaquely.
func (c *Client) GenerateEntity(ctx context.Context, entityType string, project ProjectContext, opts map[string]interface{}) (string, map[string]interface{}, error) {
	logger := NewLogger(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return "", nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(generateEntityReq{Project: project, Options: opts})
	if err != nil {
		return "", nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	reqURL := c.baseURL + "/v1/entities/" + entityType + "/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		logger.LogError("generate_entity", err)
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.longClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.LogError("generate_entity", err)
		recordCall(duration, err)
		return "", nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logger.LogWarnf("generate_entity", "upstream returned status %d", resp.StatusCode)
		recordCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return "", nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	recordCall(duration, nil)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	var out struct {
		Entity struct {
			Name string                 `json:"name"`
			Data map[string]interface{} `json:"data"`
		} `json:"entity"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Entity.Name == "" {
		return "", nil, fmt.Errorf("upstream returned unnamed entity")
	}

	return out.Entity.Name, out.Entity.Data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}
