package tiltsim

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeviceRecordsReadings(t *testing.T) {
	d := New()
	srv := httptest.NewServer(d.Router())
	defer srv.Close()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(fmt.Sprintf("%s/setTilt?name=yellow*hd&active=on&sg=1.06%d5&temp=101.%d", srv.URL, i, i))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	}

	if got := d.Count("yellow*hd"); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}

	last, ok := d.Last("yellow*hd")
	if !ok {
		t.Fatalf("no reading recorded")
	}
	if last.Name != "yellow*hd" || !last.Active {
		t.Errorf("unexpected reading: %+v", last)
	}
	if last.SG != 1.0625 || last.TempF != 101.2 {
		t.Errorf("last reading = sg %v temp %v, want sg 1.0625 temp 101.2", last.SG, last.TempF)
	}

	if _, ok := d.Last("purple"); ok {
		t.Errorf("unexpected reading for a channel that never reported")
	}
}

func TestDeviceRejectsMalformedReadings(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "missing name",
			query: "active=on&sg=1.0615&temp=101.3",
		},
		{
			name:  "unparseable gravity",
			query: "name=yellow*hd&active=on&sg=high&temp=101.3",
		},
		{
			name:  "unparseable temperature",
			query: "name=yellow*hd&active=on&sg=1.0615&temp=hot",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			srv := httptest.NewServer(d.Router())
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/setTilt?" + tt.query)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
			if got := d.Count("yellow*hd"); got != 0 {
				t.Errorf("malformed reading was recorded, Count = %d", got)
			}
		})
	}
}
