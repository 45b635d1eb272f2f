package clients

import (
	"net/http"
	"time"
)

type HTTP struct {
	c      *http.Client
	apiKey string
}

func NewHTTP(apiKey string) *HTTP {
	return &HTTP{c: &http.Client{Timeout: 60 * time.Second}, apiKey: apiKey}
}
