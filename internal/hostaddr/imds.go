package hostaddr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	TokenTTLSeconds    = 21600
	defaultTokenURL    = "http://169.254.169.254/latest/api/token"
	defaultMetadataURL = "http://169.254.169.254/latest/meta-data"
)

var (
	TokenURL    = defaultTokenURL
	MetadataURL = defaultMetadataURL
)

var errNoMetadata = errors.New("metadata path not present")

// IMDSClient reads the public addresses of the EC2 instance it runs on,
// using IMDSv2 session tokens.
type IMDSClient struct {
	httpClient *http.Client
	token      string
	tokenExp   time.Time
}

func NewIMDSClient() *IMDSClient {
	return &IMDSClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Addresses returns the instance's public IPv4 and its first IPv6 address.
// A family the instance does not have is left empty.
func (c *IMDSClient) Addresses(ctx context.Context) (Addresses, error) {
	var res Addresses

	ipv4, err := c.getMetadata(ctx, "public-ipv4")
	if err != nil && !errors.Is(err, errNoMetadata) {
		return res, fmt.Errorf("reading public-ipv4: %w", err)
	}

	ipv6, err := c.getMetadata(ctx, "ipv6")
	if err != nil && !errors.Is(err, errNoMetadata) {
		return res, fmt.Errorf("reading ipv6: %w", err)
	}

	if ipv4 == "" && ipv6 == "" {
		return res, fmt.Errorf("%w: instance has no public address", ErrNotFound)
	}

	return Parse(firstLine(ipv4), firstLine(ipv6))
}

func (c *IMDSClient) getToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExp) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, TokenURL, nil)
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("X-aws-ec2-metadata-token-ttl-seconds", fmt.Sprintf("%d", TokenTTLSeconds))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("getting IMDSv2 token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	tokenBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}

	c.token = string(tokenBytes)
	c.tokenExp = time.Now().Add(time.Duration(TokenTTLSeconds) * time.Second)

	return nil
}

func (c *IMDSClient) getMetadata(ctx context.Context, path string) (string, error) {
	if err := c.getToken(ctx); err != nil {
		return "", err
	}

	url := MetadataURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-aws-ec2-metadata-token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", errNoMetadata, path)
	default:
		return "", fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
