package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for outbound calls such as the activity
// webhook push. It embeds *resty.Client so callers use the resty API
// directly while keeping a single place to extend client behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient with an independent underlying
// resty.Client, including its own connection pool and configuration.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().
//	    SetHeader("Content-Type", "application/json").
//	    Post(webhookURL)
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
