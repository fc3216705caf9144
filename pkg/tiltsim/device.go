// Package tiltsim is an in-process stand-in for a Tilt-Sim device, used by
// tests and for poking at simferm without real hardware on the network. It
// implements just enough of the control surface to observe what a run
// reported: GET /setTilt.
package tiltsim

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Reading is one reported state for a channel.
type Reading struct {
	Name   string
	SG     float64
	TempF  float64
	Active bool
}

// Device records the readings reported to it: last write wins per channel,
// plus a running count. The real device keeps more state; assertions never
// need it.
type Device struct {
	mu     sync.Mutex
	last   map[string]Reading
	counts map[string]int
}

// New returns an empty device.
func New() *Device {
	return &Device{
		last:   make(map[string]Reading),
		counts: make(map[string]int),
	}
}

// Router returns the device's HTTP surface, ready to be served.
func (d *Device) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/setTilt", d.setTilt)

	return router
}

func (d *Device) setTilt(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.String(http.StatusBadRequest, "missing name")
		return
	}

	sg, err := strconv.ParseFloat(c.Query("sg"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "bad sg: %v", err)
		return
	}

	temp, err := strconv.ParseFloat(c.Query("temp"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "bad temp: %v", err)
		return
	}

	d.mu.Lock()
	d.last[name] = Reading{
		Name:   name,
		SG:     sg,
		TempF:  temp,
		Active: c.Query("active") == "on",
	}
	d.counts[name]++
	d.mu.Unlock()

	c.String(http.StatusOK, "OK")
}

// Last returns the most recent reading for a channel.
func (d *Device) Last(name string) (Reading, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, ok := d.last[name]
	return r, ok
}

// Count returns how many readings a channel has received.
func (d *Device) Count(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.counts[name]
}
