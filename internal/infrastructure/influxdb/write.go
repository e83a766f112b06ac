package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// MeasurementConversions is the measurement every studio operation writes to.
const MeasurementConversions = "conversions"

// Conversion describes one studio operation for the conversions measurement.
type Conversion struct {
	// Kind is the operation (parsed, exported_xml, exported_xlsx, template_imported).
	Kind string

	Entries int
	Lights  int
	Groups  int

	// Skipped counts addresses that produced no entry.
	Skipped int

	Duration time.Duration
}

// WriteConversion records a conversion point stamped with the current time.
// The write is non-blocking; it is dropped when the client is not connected.
//
// Example:
//
//	client.WriteConversion(influxdb.Conversion{
//	    Kind:     "parsed",
//	    Entries:  96,
//	    Lights:   12,
//	    Groups:   4,
//	    Duration: elapsed,
//	})
func (c *Client) WriteConversion(conv Conversion) {
	if !c.IsConnected() {
		return
	}
	c.writer.WritePoint(conversionPoint(conv, time.Now()))
}

// conversionPoint builds the point for a conversion. Kind is the only tag so
// series cardinality stays fixed.
func conversionPoint(conv Conversion, ts time.Time) *write.Point {
	return write.NewPoint(
		MeasurementConversions,
		map[string]string{
			"kind": conv.Kind,
		},
		map[string]any{
			"entries":     int64(conv.Entries),
			"lights":      int64(conv.Lights),
			"groups":      int64(conv.Groups),
			"skipped":     int64(conv.Skipped),
			"duration_ms": float64(conv.Duration) / float64(time.Millisecond),
		},
		ts,
	)
}
