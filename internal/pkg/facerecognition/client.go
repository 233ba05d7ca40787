package facerecognition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrFaceNotMatched = errors.New("face does not match the employee")
	ErrPhotoRequired  = errors.New("photo is required")
)

// Verifier checks a photo against the enrolled face of an employee.
type Verifier interface {
	Verify(ctx context.Context, employeeID string, photo io.Reader) (bool, error)
}

type Config struct {
	Enabled      bool
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type verifyResponse struct {
	Match      bool    `json:"match"`
	Confidence float64 `json:"confidence"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewVerifier returns a client for the configured provider, or a verifier
// that accepts every photo when the provider is disabled.
func NewVerifier(ctx context.Context, cfg Config) Verifier {
	if !cfg.Enabled {
		return disabled{}
	}
	return NewClient(ctx, cfg)
}

func NewClient(ctx context.Context, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	httpClient := credentials.Client(ctx)
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// Verify posts the photo to the provider. A non-match is reported as
// ErrFaceNotMatched.
func (c *Client) Verify(ctx context.Context, employeeID string, photo io.Reader) (bool, error) {
	if photo == nil {
		return false, ErrPhotoRequired
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("employee_id", employeeID); err != nil {
		return false, err
	}
	part, err := form.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return false, fmt.Errorf("failed to read photo: %w", err)
	}
	if err := form.Close(); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/verify", &body)
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("face recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("face recognition provider returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode face recognition response: %w", err)
	}

	if !result.Match {
		return false, ErrFaceNotMatched
	}
	return true, nil
}

type disabled struct{}

func (disabled) Verify(ctx context.Context, employeeID string, photo io.Reader) (bool, error) {
	return true, nil
}
