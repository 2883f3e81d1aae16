// Package planka implements the service.Service interface against the Planka REST API.
package planka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"replanka/internal/config"
	"replanka/internal/service"
)

const (
	// LoginTimeout is the timeout for the authentication call.
	LoginTimeout = 20 * time.Second

	// APITimeout is the timeout for board reads and card updates.
	APITimeout = 30 * time.Second

	// dueDateLayout is the strict ISO form Planka expects:
	// YYYY-MM-DDTHH:MM:SS.000Z, UTC, milliseconds fixed at zero.
	dueDateLayout = "2006-01-02T15:04:05.000Z"

	// previewLimit bounds response bodies quoted in error messages.
	previewLimit = 300

	// minTokenLen filters out short strings that cannot be session tokens.
	minTokenLen = 20
)

// ErrNoToken is returned when the login response carries no recognizable token.
var ErrNoToken = errors.New("no token found in login response")

// Client implements service.Service against a Planka server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New authenticates against the server in cfg and returns a ready client.
// The session token is carried on every subsequent request as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	token, err := login(ctx, baseURL, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}, nil
}

// login posts credentials to /api/access-tokens and extracts the session token.
func login(ctx context.Context, baseURL, username, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, LoginTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{
		"emailOrUsername": username,
		"password":        password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/access-tokens", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("login failed: status=%d body=%q", resp.StatusCode, preview(raw))
	}

	// The token may arrive as a bare JSON string or inside an object,
	// depending on server version. Try the known shapes in order.
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload = string(raw)
	}

	token, ok := extractToken(payload)
	if !ok {
		ct := resp.Header.Get("Content-Type")
		if ct == "" {
			ct = "unknown"
		}
		return "", fmt.Errorf("%w: status=%d content-type=%s body=%q", ErrNoToken, resp.StatusCode, ct, preview(raw))
	}

	return token, nil
}

// tokenFields are the object keys that may carry the token, in priority order.
var tokenFields = []string{"token", "accessToken", "access_token", "jwt", "bearer", "item"}

// extractToken decodes the session token from a closed set of response
// shapes: a bare string, an object with a known token field, or one level of
// nesting under such a field. It is not a general descent over arbitrary JSON.
func extractToken(payload any) (string, bool) {
	switch v := payload.(type) {
	case string:
		return tokenString(v)
	case map[string]any:
		for _, key := range tokenFields {
			switch field := v[key].(type) {
			case string:
				if t, ok := tokenString(field); ok {
					return t, true
				}
			case map[string]any:
				for _, inner := range []string{"token", "jwt"} {
					if s, ok := field[inner].(string); ok {
						if t, ok := tokenString(s); ok {
							return t, true
						}
					}
				}
			}
		}
	}
	return "", false
}

// tokenString validates a candidate token string. HTML error pages and short
// values are rejected.
func tokenString(s string) (string, bool) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return "", false
	}
	if strings.ContainsAny(s, " \n") || len(s) < minTokenLen {
		return "", false
	}
	return s, true
}

// boardEnvelope is the wire shape of GET /api/boards/{id}.
type boardEnvelope struct {
	Included struct {
		Lists []listItem `json:"lists"`
		Cards []cardItem `json:"cards"`
	} `json:"included"`
}

type listItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cardItem struct {
	ID          string  `json:"id"`
	ListID      string  `json:"listId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Position    float64 `json:"position"`
}

// Board implements service.Service.
func (c *Client) Board(ctx context.Context, boardID string) (service.Board, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/boards/"+boardID, nil)
	if err != nil {
		return service.Board{}, err
	}

	var envelope boardEnvelope
	if err := c.do(req, &envelope); err != nil {
		return service.Board{}, wrapError(err)
	}

	board := service.Board{
		Lists: make([]service.List, 0, len(envelope.Included.Lists)),
		Cards: make([]service.Card, 0, len(envelope.Included.Cards)),
	}
	for _, l := range envelope.Included.Lists {
		board.Lists = append(board.Lists, service.List{ID: l.ID, Name: l.Name})
	}
	for _, card := range envelope.Included.Cards {
		due := ""
		if card.DueDate != nil {
			due = *card.DueDate
		}
		board.Cards = append(board.Cards, service.Card{
			ID:          card.ID,
			ListID:      card.ListID,
			Title:       card.Name,
			Description: card.Description,
			Due:         due,
			Position:    card.Position,
		})
	}
	return board, nil
}

// SetCardDue implements service.Service.
func (c *Client) SetCardDue(ctx context.Context, cardID string, due time.Time) error {
	return c.patchCard(ctx, cardID, map[string]any{
		"dueDate": FormatDue(due),
	})
}

// MoveCard implements service.Service.
func (c *Client) MoveCard(ctx context.Context, cardID, listID string, position float64) error {
	return c.patchCard(ctx, cardID, map[string]any{
		"listId":   listID,
		"position": position,
		"dueDate":  nil,
	})
}

func (c *Client) patchCard(ctx context.Context, cardID string, payload map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/cards/"+cardID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return wrapError(err)
	}
	return nil
}

// do executes the request and decodes a JSON response into out when non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status=%d body=%q", req.Method, req.URL.Path, resp.StatusCode, preview(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// FormatDue serializes an instant in the strict form Planka expects.
func FormatDue(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(dueDateLayout)
}

// preview returns a bounded single-line excerpt of a response body.
func preview(body []byte) string {
	s := string(body)
	if len(s) > previewLimit {
		s = s[:previewLimit]
	}
	return strings.ReplaceAll(s, "\n", `\n`)
}

// wrapError wraps API errors with operator-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out: %w", err)
	}
	if strings.Contains(errStr, "status=401") || strings.Contains(errStr, "status=403") {
		return fmt.Errorf("session rejected (token expired or revoked): %w", err)
	}
	if strings.Contains(errStr, "status=404") {
		return fmt.Errorf("not found: %w", err)
	}

	return err
}
