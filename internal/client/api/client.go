package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"koth/internal/client/display"
	"koth/internal/core"
)

// Error is a non-2xx reply from the server
type Error struct {
	Status   int
	Response core.ErrorResponse
}

func (e *Error) Error() string {
	if e.Response.Details != "" {
		return fmt.Sprintf("%s (%s): %s", e.Response.Error, e.Response.Code, e.Response.Details)
	}
	if e.Response.Error != "" {
		return fmt.Sprintf("%s (%s)", e.Response.Error, e.Response.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer // request trace in verbose mode
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Above the server's long-poll window
			Timeout: 30 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	url := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.Verbose {
		fmt.Fprintf(c.Out, "%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
		if body != nil {
			display.PrettyPrintJSON(c.Out, body)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if c.Verbose {
		statusColor := display.Green
		if resp.StatusCode >= 400 {
			statusColor = display.Red
		}
		fmt.Fprintf(c.Out, "%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		// Body may not be JSON (proxy errors); the status alone still reports
		_ = json.Unmarshal(respBody, &apiErr.Response)
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// API Methods

func (c *Client) Health() (*core.HealthResponse, error) {
	var resp core.HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame() (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games", nil, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

// GetGameWithPoll waits server-side until the ply count differs from plies
func (c *Client) GetGameWithPoll(gameID string, plies int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("/api/v1/games/%s?wait=true&plies=%d", gameID, plies)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) MakeMove(gameID, from, to string) (*core.GameResponse, error) {
	req := &core.MoveRequest{From: from, To: to}
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/moves", req, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/board", nil, &resp)
	return &resp, err
}
