// Package knx holds the KNX vocabulary used by the studio: 3-level group
// addresses and the middle-group function tables of gateway conventions.
//
// # Group Addresses
//
// KNX uses group addresses for communication. This package uses the 3-level
// format: Main/Middle/Sub (e.g., "1/2/3").
//
// Example:
//
//	addr, err := knx.ParseGroupAddress("1/2/3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(addr.String()) // "1/2/3"
//
// # Function Tables
//
// A gateway wiring convention binds each middle group to one function of a
// lighting object (switch, brightness, colour temperature and their status
// feedbacks). The binding is data, not code:
//
//	table := knx.DefaultFunctionTable()
//	fn, ok := table.Lookup(addr.Middle)
//	if !ok {
//	    // not a renameable function group: skip
//	}
package knx
