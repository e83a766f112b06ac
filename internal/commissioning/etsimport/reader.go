package etsimport

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Element and attribute local names of the ETS group address export.
const (
	elemGroupAddress = "GroupAddress"
	elemGroupRange   = "GroupRange"

	attrAddress     = "Address"
	attrName        = "Name"
	attrDPTs        = "DPTs"
	attrDPT         = "DatapointType"

	locationSeparator = " > "
)

// ReadGroupAddresses returns every GroupAddress element of an ETS XML
// export, in document order. Elements without an Address attribute are
// skipped. Address text is returned verbatim; callers decide how to treat
// values that are not valid three-level addresses.
//
// Returns:
//   - []GroupAddress: the addresses found
//   - error: ErrMalformedDocument, ErrUnsupportedFormat, ErrFileTooLarge,
//     or ErrNoGroupAddresses when the document has no GroupAddress element
func ReadGroupAddresses(data []byte) ([]GroupAddress, error) {
	if _, err := DetectFormat(data); err != nil {
		return nil, err
	}

	var (
		addrs    []GroupAddress
		ranges   []string
		elements int
	)

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case elemGroupRange:
				ranges = append(ranges, attrValue(t.Attr, attrName))
			case elemGroupAddress:
				elements++
				address := attrValue(t.Attr, attrAddress)
				if strings.TrimSpace(address) == "" {
					continue
				}
				dpt := attrValue(t.Attr, attrDPTs)
				if dpt == "" {
					dpt = attrValue(t.Attr, attrDPT)
				}
				addrs = append(addrs, GroupAddress{
					Address:  address,
					Name:     attrValue(t.Attr, attrName),
					DPT:      normaliseDPT(dpt),
					Location: locationPath(ranges),
				})
			}
		case xml.EndElement:
			if t.Name.Local == elemGroupRange && len(ranges) > 0 {
				ranges = ranges[:len(ranges)-1]
			}
		}
	}

	if elements == 0 {
		return nil, ErrNoGroupAddresses
	}

	return addrs, nil
}

// attrValue returns the value of the first attribute with the given local
// name, or "".
func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func locationPath(ranges []string) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r = strings.TrimSpace(r); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, locationSeparator)
}
