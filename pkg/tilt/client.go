// Package tilt reports readings to a Tilt-Sim device over its plain HTTP
// control endpoint.
package tilt

import (
	"fmt"
	"io"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ChuckGl/simferm/pkg/sim"
)

// Client reports readings for one Tilt channel on one device.
type Client struct {
	address    string
	channel    string
	httpClient *http.Client
}

var _ sim.Notifier = (*Client)(nil)

// NewClient creates a client for the device at address (host or host:port),
// reporting as channel. The HTTP client carries no timeout: notifications
// are blocking and fire-and-forget, so a slow device delays the run rather
// than failing it.
func NewClient(address, channel string) *Client {
	return &Client{
		address:    address,
		channel:    channel,
		httpClient: &http.Client{},
	}
}

// Notify reports one reading. The query string is built literally, channel
// name unescaped, because the device firmware reads the raw query and
// expects names like "yellow*hd" verbatim. The response body is ignored. A
// non-2xx status is not an error: whatever the device thinks of the values,
// the run must go on.
func (c *Client) Notify(s sim.Sample) error {
	url := fmt.Sprintf("http://%s/setTilt?name=%s&active=on&sg=%.4f&temp=%.1f",
		c.address, c.channel, s.Gravity, s.TempF)

	logrus.WithFields(logrus.Fields{
		"url":  url,
		"sg":   s.Gravity,
		"temp": s.TempF,
	}).Debug("sending reading")

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to reach device at %s", c.address)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	// Drain the body so the connection can be reused.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		logrus.Debugf("failed to drain response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    url,
		}).Debug("device returned non-2xx status")
	}

	return nil
}
