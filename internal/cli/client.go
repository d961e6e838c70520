package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rastreio/internal/handlers"
	"rastreio/internal/validation"
)

// Client represents an HTTP client for the carrier detection API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 30*time.Second)
}

// NewClientWithTimeout creates a new API client with a custom request timeout
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError represents an error from the API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// doRequest performs an HTTP request and handles errors
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = resp.Status
		}
		return nil, &APIError{Code: resp.StatusCode, Message: message}
	}

	return resp, nil
}

// HealthCheck checks if the API server is healthy
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// Detect returns the ranked detection candidates for a tracking code
func (c *Client) Detect(req *handlers.DetectRequest) ([]handlers.DetectionResult, error) {
	resp, err := c.doRequest("POST", "/api/detect", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var results []handlers.DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return results, nil
}

// DetectBest returns the single best candidate, or nil when no carrier was
// confidently identified
func (c *Client) DetectBest(req *handlers.DetectRequest) (*handlers.DetectionResult, error) {
	resp, err := c.doRequest("POST", "/api/detect/best", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var result handlers.DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Validate validates a tracking code, optionally against a specific carrier
func (c *Client) Validate(code, carrierID string) (*validation.Result, error) {
	resp, err := c.doRequest("POST", "/api/validate", &handlers.ValidateRequest{
		Code:    code,
		Carrier: carrierID,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result validation.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Suggest returns corrected variants of an invalid tracking code
func (c *Client) Suggest(code string) ([]string, error) {
	resp, err := c.doRequest("POST", "/api/suggestions", &handlers.SuggestRequest{Code: code})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result handlers.SuggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Suggestions, nil
}

// GetCarriers returns the carrier pattern table
func (c *Client) GetCarriers() ([]handlers.CarrierInfo, error) {
	resp, err := c.doRequest("GET", "/api/carriers", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var carriers []handlers.CarrierInfo
	if err := json.NewDecoder(resp.Body).Decode(&carriers); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return carriers, nil
}
