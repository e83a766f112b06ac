// Package mqtt publishes conversion events to an MQTT broker.
//
// The studio is a producer only. When mqtt.enabled is set, every parse,
// export and template import emits a small JSON event so that building
// management tooling can follow commissioning progress:
//
//	gastudio/system/status          retained online/offline (LWT)
//	gastudio/event/parsed
//	gastudio/event/exported_xml
//	gastudio/event/exported_xlsx
//	gastudio/event/template_imported
//
// # Usage
//
//	client, err := mqtt.Connect(ctx, cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.PublishEvent("parsed", payload)
//
// Broker outages never block conversions: the studio logs failed
// publishes and carries on.
package mqtt
