package studio

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/influxdb"
)

// Event kinds, one per studio operation.
const (
	EventParsed           = "parsed"
	EventExportedXML      = "exported_xml"
	EventExportedXLSX     = "exported_xlsx"
	EventTemplateImported = "template_imported"
)

// Publisher forwards events to a message bus. Satisfied by *mqtt.Client.
type Publisher interface {
	PublishEvent(kind string, payload []byte) error
}

// MetricsWriter records operation metrics. Satisfied by *influxdb.Client.
type MetricsWriter interface {
	WriteConversion(conv influxdb.Conversion)
}

// Event is the JSON payload published for each operation.
type Event struct {
	Kind       string    `json:"kind"`
	Entries    int       `json:"entries"`
	Lights     int       `json:"lights"`
	Groups     int       `json:"groups"`
	Skipped    int       `json:"skipped"`
	Renamed    int       `json:"renamed,omitempty"`
	Bytes      int       `json:"bytes,omitempty"`
	DurationMS float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// emit reports one finished operation. It never fails the caller.
func (s *Service) emit(kind string, summary Summary, renamed, size int, started time.Time) {
	elapsed := time.Since(started)

	if s.metrics != nil {
		s.metrics.WriteConversion(influxdb.Conversion{
			Kind:     kind,
			Entries:  summary.ConvertedCount,
			Lights:   summary.LightCount,
			Groups:   summary.GroupCount,
			Skipped:  summary.Skipped(),
			Duration: elapsed,
		})
	}

	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(Event{
		Kind:       kind,
		Entries:    summary.ConvertedCount,
		Lights:     summary.LightCount,
		Groups:     summary.GroupCount,
		Skipped:    summary.Skipped(),
		Renamed:    renamed,
		Bytes:      size,
		DurationMS: float64(elapsed) / float64(time.Millisecond),
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("encoding event failed", "kind", kind, "error", err)
		return
	}
	if err := s.publisher.PublishEvent(kind, payload); err != nil {
		s.logger.Warn("publishing event failed", "kind", kind, "error", err)
	}
}
