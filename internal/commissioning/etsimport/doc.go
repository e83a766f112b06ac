// Package etsimport reads and rewrites ETS group address XML exports.
//
// ETS (Engineering Tool Software) is the standard configuration tool for KNX
// installations. Its group address export is an XML document of nested
// GroupRange elements holding GroupAddress elements:
//
//	<GroupAddress-Export xmlns="http://knx.org/xml/ga-export/01">
//	  <GroupRange Name="Lighting" RangeStart="2048" RangeEnd="4095">
//	    <GroupAddress Name="Kitchen" Address="1/1/1" DPTs="DPST-1-1"/>
//	  </GroupRange>
//	</GroupAddress-Export>
//
// Elements are matched by local name, so both namespaced and plain exports
// are accepted. Native .knxproj archives are detected and rejected with
// ErrUnsupportedFormat.
//
// # Usage
//
//	addrs, err := etsimport.ReadGroupAddresses(data)
//	if err != nil {
//	    return err
//	}
//
//	out, renamed, err := etsimport.ApplyNames(data, map[string]string{
//	    "1/1/1": "Kitchen 9 3",
//	})
//
// ApplyNames only touches the Name attribute of matched elements; every
// other byte of the document, including the declaration, comments,
// whitespace and attribute order, is copied through unchanged.
package etsimport
