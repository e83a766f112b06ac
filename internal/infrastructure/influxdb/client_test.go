package influxdb

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/config"
)

// testConfig returns a configuration for a local InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "gastudio-dev-token",
		Org:           "gastudio",
		Bucket:        "gastudio",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// fakeWriter captures points instead of sending them.
type fakeWriter struct {
	mu      sync.Mutex
	points  []*write.Point
	flushes int
}

func (f *fakeWriter) WritePoint(p *write.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points = append(f.points, p)
}

func (f *fakeWriter) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	client, err := Connect(context.Background(), cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
	if client != nil {
		t.Error("Connect() returned a client while disabled")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := Connect(ctx, cfg); !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestBatchOptions(t *testing.T) {
	tests := []struct {
		name      string
		batch     int
		flush     int
		wantBatch uint
		wantFlush uint
	}{
		{"configured", 50, 2, 50, 2000},
		{"zero falls back", 0, 0, defaultBatchSize, defaultFlushInterval * 1000},
		{"negative falls back", -5, -1, defaultBatchSize, defaultFlushInterval * 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.BatchSize = tt.batch
			cfg.FlushInterval = tt.flush

			batch, flush := batchOptions(cfg)
			if batch != tt.wantBatch || flush != tt.wantFlush {
				t.Errorf("batchOptions() = (%d, %d), want (%d, %d)", batch, flush, tt.wantBatch, tt.wantFlush)
			}
		})
	}
}

func TestConversionPoint(t *testing.T) {
	ts := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	p := conversionPoint(Conversion{
		Kind:     "parsed",
		Entries:  96,
		Lights:   12,
		Groups:   4,
		Skipped:  2,
		Duration: 1500 * time.Microsecond,
	}, ts)

	line := write.PointToLineProtocol(p, time.Nanosecond)
	for _, want := range []string{
		"conversions,kind=parsed ",
		"entries=96i",
		"lights=12i",
		"groups=4i",
		"skipped=2i",
		"duration_ms=1.5",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line protocol %q missing %q", line, want)
		}
	}
}

func TestWriteConversion(t *testing.T) {
	fw := &fakeWriter{}
	c := &Client{writer: fw, connected: true}

	c.WriteConversion(Conversion{Kind: "exported_xlsx", Entries: 3})
	c.Flush()

	if len(fw.points) != 1 {
		t.Fatalf("points written = %d, want 1", len(fw.points))
	}
	if fw.points[0].Name() != MeasurementConversions {
		t.Errorf("measurement = %q", fw.points[0].Name())
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fw.flushes != 2 {
		t.Errorf("flushes = %d, want 2 (Flush + Close)", fw.flushes)
	}

	// Dropped after close.
	c.WriteConversion(Conversion{Kind: "parsed"})
	c.Flush()
	if len(fw.points) != 1 || fw.flushes != 2 {
		t.Errorf("client kept writing after Close: points=%d flushes=%d", len(fw.points), fw.flushes)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	c := &Client{}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestClose_Nil(t *testing.T) {
	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
}

func TestConnect_Live(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") == "" {
		t.Skip("set RUN_INTEGRATION to test against a local InfluxDB")
	}

	client, err := Connect(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close() //nolint:errcheck // Test cleanup

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
	client.WriteConversion(Conversion{Kind: "parsed", Entries: 1})
	client.Flush()
}
