// Package influxdb records conversion metrics in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. When
// influxdb.enabled is set, each parse, export and template import writes
// one point to the "conversions" measurement:
//
//	conversions,kind=parsed entries=96i,lights=12i,groups=4i,skipped=0i,duration_ms=3.2
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // metrics switched off
//	}
//	defer client.Close()
//
//	client.SetOnError(func(err error) {
//	    logger.Warn("influxdb write failed", "error", err)
//	})
//	client.WriteConversion(influxdb.Conversion{Kind: "parsed", Entries: 96})
package influxdb
