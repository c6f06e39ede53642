package clients

import (
	"net/http"
	"testing"
	"time"

	config "github.com/DRSN-tech/products-board/internal/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIHTTPClient(t *testing.T) {
	c := NewAPIHTTPClient(&config.APIConfig{Timeout: 3 * time.Second, InsecureSkipVerify: true})

	assert.Equal(t, 3*time.Second, c.Timeout)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, tr.TLSClientConfig)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestNewAPIHTTPClient_VerifiesTLSByDefault(t *testing.T) {
	c := NewAPIHTTPClient(&config.APIConfig{Timeout: time.Second})

	tr := c.Transport.(*http.Transport)
	if tr.TLSClientConfig != nil {
		assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
	}
}
