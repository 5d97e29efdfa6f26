package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/satsflow/checkout/internal/errors"
)

const DefaultEndpoint = "https://api.blink.sv/graphql"

type Config struct {
	Endpoint string
	// APIKey is the opaque account credential, sent as the X-API-KEY header
	// on every call. It is never read from ambient process state here.
	APIKey  string
	Timeout time.Duration
}

// Client talks to the Blink-style GraphQL ledger: wallet listing, invoice
// creation and the recent-transaction window.
type Client struct {
	config *Config
	client *http.Client
	log    *slog.Logger
}

func New(config *Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    slog.With("component", "ledger"),
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// do posts one GraphQL document and unmarshals the data payload into out.
// Authorization failures, reported either as HTTP 401/403 or as top-level
// GraphQL errors, map to CodeAuthentication; everything else transport-level
// maps to CodeTransport.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.New(errors.CodeTransport, "couldn't encode ledger request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.New(errors.CodeTransport, "couldn't build ledger request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.New(errors.CodeTransport, "error calling ledger", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Newf(errors.CodeAuthentication, nil,
			"ledger rejected the API key (status %d)", resp.StatusCode)
	case http.StatusOK:
	default:
		return errors.Newf(errors.CodeTransport, nil,
			"ledger returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.New(errors.CodeTransport, "couldn't decode ledger response", err)
	}

	if len(envelope.Errors) > 0 {
		message := envelope.Errors[0].Message
		if isAuthMessage(message) {
			return errors.New(errors.CodeAuthentication, message, nil)
		}
		return errors.New(errors.CodeTransport, message, nil)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.New(errors.CodeTransport, "couldn't decode ledger data", err)
		}
	}

	return nil
}

func isAuthMessage(message string) bool {
	lowered := strings.ToLower(message)
	return strings.Contains(lowered, "auth") || strings.Contains(lowered, "api key")
}
