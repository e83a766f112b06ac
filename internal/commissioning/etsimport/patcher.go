package etsimport

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ApplyNames sets the Name attribute of every GroupAddress element whose
// Address has a non-blank entry in names.
//
// The document is streamed once. Only the start tags of renamed elements
// are rewritten; all other bytes are copied through, so elements outside
// the map keep their names and formatting. A matched element without a
// Name attribute gets one appended after its last attribute.
//
// Returns:
//   - []byte: the rewritten document (a fresh slice; doc is not modified)
//   - int: number of elements renamed
//   - error: ErrMalformedDocument or ErrUnsupportedFormat
func ApplyNames(doc []byte, names map[string]string) ([]byte, int, error) {
	if _, err := DetectFormat(doc); err != nil {
		return nil, 0, err
	}

	var (
		out     bytes.Buffer
		copied  int64
		renamed int
	)
	out.Grow(len(doc))

	decoder := xml.NewDecoder(bytes.NewReader(doc))
	for {
		start := decoder.InputOffset()
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != elemGroupAddress {
			continue
		}

		name, ok := lookupName(names, attrValue(se.Attr, attrAddress))
		if !ok {
			continue
		}
		renamed++
		if current, has := findAttr(se.Attr, attrName); has && current == name {
			continue
		}

		end := decoder.InputOffset()
		tag, err := setNameAttr(doc[start:end], name)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: element at offset %d: %w", ErrMalformedDocument, start, err)
		}

		out.Write(doc[copied:start])
		out.Write(tag)
		copied = end
	}

	out.Write(doc[copied:])
	return out.Bytes(), renamed, nil
}

// lookupName finds a non-blank name for an address, trying the exact
// document text first and then its trimmed form.
func lookupName(names map[string]string, address string) (string, bool) {
	if address == "" {
		return "", false
	}
	name, ok := names[address]
	if !ok {
		name, ok = names[strings.TrimSpace(address)]
	}
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}

func findAttr(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// setNameAttr rewrites the Name attribute inside one raw start tag.
// The quotes around an existing value are kept.
func setNameAttr(tag []byte, name string) ([]byte, error) {
	s := tagScanner{buf: tag}
	if !s.skipName() {
		return nil, errors.New("unreadable start tag")
	}

	for {
		attrEnd := s.pos
		s.skipSpace()
		if s.done() {
			return insertAttr(tag, attrEnd, name), nil
		}

		key, valStart, valEnd, ok := s.attr()
		if !ok {
			return nil, errors.New("unreadable attribute")
		}
		if localName(key) == attrName {
			var buf bytes.Buffer
			buf.Grow(len(tag) + len(name))
			buf.Write(tag[:valStart])
			writeAttrValue(&buf, name)
			buf.Write(tag[valEnd:])
			return buf.Bytes(), nil
		}
	}
}

func insertAttr(tag []byte, at int, name string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(tag) + len(name) + len(attrName) + 4)
	buf.Write(tag[:at])
	buf.WriteString(" " + attrName + "=")
	buf.WriteByte('"')
	writeAttrValue(&buf, name)
	buf.WriteByte('"')
	buf.Write(tag[at:])
	return buf.Bytes()
}

// writeAttrValue escapes v for an attribute value. Both quote characters
// are escaped, so either delimiter is safe.
func writeAttrValue(buf *bytes.Buffer, v string) {
	_ = xml.EscapeText(buf, []byte(v))
}

func localName(qname string) string {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

// tagScanner walks the attributes of a raw start tag such as
// `<GroupAddress Name="x" Address='1/1/1' />`.
type tagScanner struct {
	buf []byte
	pos int
}

func (s *tagScanner) skipName() bool {
	if s.pos >= len(s.buf) || s.buf[s.pos] != '<' {
		return false
	}
	s.pos++
	begin := s.pos
	for s.pos < len(s.buf) && !isTagSpace(s.buf[s.pos]) && s.buf[s.pos] != '>' && s.buf[s.pos] != '/' {
		s.pos++
	}
	return s.pos > begin
}

func (s *tagScanner) skipSpace() {
	for s.pos < len(s.buf) && isTagSpace(s.buf[s.pos]) {
		s.pos++
	}
}

func (s *tagScanner) done() bool {
	return s.pos >= len(s.buf) || s.buf[s.pos] == '>' || s.buf[s.pos] == '/'
}

// attr reads `key = "value"` and returns the key plus the value's span
// (excluding quotes).
func (s *tagScanner) attr() (key string, valStart, valEnd int, ok bool) {
	begin := s.pos
	for s.pos < len(s.buf) && s.buf[s.pos] != '=' && !isTagSpace(s.buf[s.pos]) {
		s.pos++
	}
	key = string(s.buf[begin:s.pos])

	s.skipSpace()
	if s.pos >= len(s.buf) || s.buf[s.pos] != '=' {
		return "", 0, 0, false
	}
	s.pos++
	s.skipSpace()

	if s.pos >= len(s.buf) || (s.buf[s.pos] != '"' && s.buf[s.pos] != '\'') {
		return "", 0, 0, false
	}
	quote := s.buf[s.pos]
	s.pos++
	valStart = s.pos

	end := bytes.IndexByte(s.buf[s.pos:], quote)
	if end < 0 {
		return "", 0, 0, false
	}
	valEnd = s.pos + end
	s.pos = valEnd + 1

	return key, valStart, valEnd, key != ""
}

func isTagSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
