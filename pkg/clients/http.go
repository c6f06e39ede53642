package clients

import (
	"crypto/tls"
	"net/http"

	config "github.com/DRSN-tech/products-board/internal/cfg"
)

// NewAPIHTTPClient создаёт HTTP-клиент для удалённого API продуктов.
func NewAPIHTTPClient(cfg *config.APIConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		// самоподписанный dev-сертификат на https://localhost
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
