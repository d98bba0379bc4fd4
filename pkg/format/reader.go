package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotEnvelope indicates the stream does not start with a shard envelope.
var ErrNotEnvelope = errors.New("not a shard envelope")

// maxPreambleLines bounds the scan for HeaderMarker on garbage input.
const maxPreambleLines = 50

// Reader is a wrapper around the payload stream that separates the
// metadata header from the binary body.
type Reader struct {
	Header *Header
	Body   io.Reader
}

// NewReader attempts to parse a shard envelope.
// It consumes the text header and returns a Reader with the populated
// Header and a Body reader positioned at the start of the shard bytes.
func NewReader(r io.Reader) (*Reader, error) {
	// bufio lets us read line by line without losing the binary body that follows.
	bufReader := bufio.NewReader(r)

	// 1. Scan for the Header Marker
	foundHeader := false
	for i := 0; i < maxPreambleLines; i++ {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: %q marker missing: %v", ErrNotEnvelope, HeaderMarker, err)
		}
		if strings.TrimSpace(line) == HeaderMarker {
			foundHeader = true
			break
		}
	}

	if !foundHeader {
		return nil, fmt.Errorf("%w: could not find %q marker", ErrNotEnvelope, HeaderMarker)
	}

	// 2. Read the JSON content until the Body Marker
	var jsonBuilder bytes.Buffer
	for {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: %q marker missing: %v", ErrNotEnvelope, BodyMarker, err)
		}

		if strings.TrimSpace(line) == BodyMarker {
			break
		}

		jsonBuilder.WriteString(line)
	}

	// 3. Unmarshal the Header
	header := &Header{}
	if err := json.Unmarshal(jsonBuilder.Bytes(), header); err != nil {
		return nil, fmt.Errorf("failed to parse header json: %w", err)
	}

	// 4. Validate the parsed header
	if err := header.Validate(); err != nil {
		return nil, fmt.Errorf("header validation failed: %w", err)
	}

	return &Reader{
		Header: header,
		// Buffered body bytes are drained before reading the underlying source.
		Body: bufReader,
	}, nil
}
