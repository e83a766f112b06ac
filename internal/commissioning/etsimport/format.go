package etsimport

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode"
)

// MaxFileSize is the maximum accepted document size (50MB).
const MaxFileSize = 50 * 1024 * 1024

// Format names reported by DetectFormat.
const (
	FormatXML     = "xml"
	FormatKNXProj = "knxproj"
)

// Regex match counts.
const (
	regexMatchCount3 = 3
	regexMatchCount2 = 2
)

// DetectFormat sniffs the content of an uploaded file.
//
// Returns:
//   - string: FormatXML for documents this package can process
//   - error: ErrFileTooLarge, ErrUnsupportedFormat for .knxproj archives,
//     ErrMalformedDocument for anything else
func DetectFormat(data []byte) (string, error) {
	switch {
	case len(data) > MaxFileSize:
		return "", ErrFileTooLarge
	case len(bytes.TrimSpace(data)) == 0:
		return "", fmt.Errorf("%w: empty document", ErrMalformedDocument)
	case isZipFile(data):
		return FormatKNXProj, fmt.Errorf("%w: .knxproj archives are not supported, export group addresses as XML", ErrUnsupportedFormat)
	case !isXMLFile(data):
		return "", fmt.Errorf("%w: not an XML document", ErrMalformedDocument)
	default:
		return FormatXML, nil
	}
}

func isZipFile(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B
}

func isXMLFile(data []byte) bool {
	trimmed := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed = bytes.TrimLeftFunc(trimmed, unicode.IsSpace)
	return bytes.HasPrefix(trimmed, []byte("<"))
}

// Precompiled regexes for DPT normalisation.
var (
	reDPTComplete = regexp.MustCompile(`^\d+\.\d{3}$`)
	reDPST        = regexp.MustCompile(`DPST-(\d+)-(\d+)`)
	reDPT         = regexp.MustCompile(`DPT-?(\d+)`)
	reDPTPartial  = regexp.MustCompile(`^(\d+)\.(\d+)$`)
)

// normaliseDPT converts ETS DPT format to standard format.
// DPST-1-1 -> 1.001, DPT-5 -> 5.001, 9.1 -> 9.001.
// ETS may list several DPTs separated by spaces; only the first is used.
func normaliseDPT(dpt string) string {
	if fields := bytes.Fields([]byte(dpt)); len(fields) > 0 {
		dpt = string(fields[0])
	} else {
		return ""
	}

	if reDPTComplete.MatchString(dpt) {
		return dpt
	}

	if matches := reDPST.FindStringSubmatch(dpt); len(matches) == regexMatchCount3 {
		return fmt.Sprintf("%s.%03s", matches[1], matches[2])
	}

	if matches := reDPT.FindStringSubmatch(dpt); len(matches) == regexMatchCount2 {
		return matches[1] + ".001"
	}

	if matches := reDPTPartial.FindStringSubmatch(dpt); len(matches) == regexMatchCount3 {
		return fmt.Sprintf("%s.%03s", matches[1], matches[2])
	}

	return dpt
}
