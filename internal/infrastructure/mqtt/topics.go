package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes. Every topic the studio publishes lives under TopicPrefix.
const (
	// TopicPrefix is the root of the studio's topic tree.
	TopicPrefix = "gastudio"

	// TopicPrefixSystem is the base for process status topics.
	TopicPrefixSystem = TopicPrefix + "/system"

	// TopicPrefixEvent is the base for conversion events.
	TopicPrefixEvent = TopicPrefix + "/event"
)

// Topics provides builders for the studio's MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.Event("parsed")
//	// Returns: "gastudio/event/parsed"
type Topics struct{}

// SystemStatus returns the retained online/offline status topic.
//
// Example: gastudio/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// Event returns the topic for one kind of conversion event.
//
// Example: gastudio/event/exported_xlsx
func (Topics) Event(kind string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixEvent, kind)
}

// AllEvents returns a wildcard matching every conversion event.
//
// Example: gastudio/event/+
func (Topics) AllEvents() string {
	return TopicPrefixEvent + "/+"
}

// validEventKind reports whether kind can stand as one topic level.
func validEventKind(kind string) bool {
	return kind != "" && !strings.ContainsAny(kind, "/+#\x00")
}
