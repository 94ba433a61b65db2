package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/velodz/backoffice/internal/domain"
)

const (
	agencyRequestTimeout = 10 * time.Second
	agencyRetryMax       = 2
)

// parcelResponse is the agency's tracking payload
type parcelResponse struct {
	Tracking string `json:"tracking"`
	Status   string `json:"status"`
}

// HTTPAgencyClient implements domain.AgencyClient against the delivery
// agency's parcel tracking API. Transient transport failures are retried;
// a rate-limit answer is surfaced as RateLimitError so callers can back off.
type HTTPAgencyClient struct {
	baseURL    string
	apiToken   string
	httpClient *retryablehttp.Client
}

// NewAgencyClient creates a new agency tracking client
func NewAgencyClient(baseURL, apiToken string) *HTTPAgencyClient {
	client := retryablehttp.NewClient()
	client.RetryMax = agencyRetryMax
	client.HTTPClient.Timeout = agencyRequestTimeout
	client.Logger = nil
	// 429 carries a Retry-After we want to hand to the caller instead of
	// burning retries on it
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &HTTPAgencyClient{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: client,
	}
}

// FetchStatus returns the agency's raw status for one tracking ID
func (c *HTTPAgencyClient) FetchStatus(ctx context.Context, trackingID string) (string, error) {
	url := fmt.Sprintf("%s/api/v1/parcels/%s", c.baseURL, trackingID)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("agency client: failed to create request: %w", err)
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("agency client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var parcel parcelResponse
		if err := json.NewDecoder(resp.Body).Decode(&parcel); err != nil {
			return "", fmt.Errorf("agency client: failed to decode response: %w", err)
		}
		return parcel.Status, nil

	case http.StatusNoContent, http.StatusNotFound:
		// the agency does not know this shipment (yet)
		return "", domain.ErrShipmentNotFound

	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		seconds, _ := strconv.Atoi(retryAfter)
		return "", NewRateLimitError(time.Duration(seconds) * time.Second)

	default:
		return "", fmt.Errorf("agency client: unexpected status code: %d", resp.StatusCode)
	}
}
