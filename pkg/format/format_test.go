package format

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestRoundTrip_Standard(t *testing.T) {
	// 1. Setup Input Data
	originalHeader := &Header{
		OriginalFilename: "secret_plans.txt",
		Timestamp:        1620000000,
		Index:            1,
		Total:            5,
		Threshold:        3,
		Size:             4096,
	}
	// Shard bytes may contain the marker text and newlines.
	originalBody := []byte("binary\n-- BODY --\n\x00\xff shard content")

	// 2. Write to a buffer (this is what gets hidden in an image)
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if err := writer.Write(originalHeader, originalBody); err != nil {
		t.Fatalf("Failed to write envelope: %v", err)
	}

	if !strings.Contains(buf.String(), "IT IS ONE OF 5 SHARDS. THIS IS SHARD NUMBER 1.") {
		t.Errorf("Magic header missing from output:\n%s", buf.String())
	}

	// 3. Read back from the buffer
	reader, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}

	// 4. Verify Header Integrity
	if !reflect.DeepEqual(reader.Header, originalHeader) {
		t.Errorf("Headers do not match.\nGot: %+v\nWant: %+v", reader.Header, originalHeader)
	}

	// 5. Verify Body Integrity
	readBody, err := io.ReadAll(reader.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	if !bytes.Equal(readBody, originalBody) {
		t.Errorf("Body content does not match.\nGot: %q\nWant: %q", readBody, originalBody)
	}
}

func TestWriteRejectsInvalidHeader(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).Write(&Header{OriginalFilename: "x", Index: 3, Total: 2, Threshold: 1, Size: 1}, []byte("x"))
	if err == nil {
		t.Fatal("Writer should reject an index beyond total")
	}
	if buf.Len() != 0 {
		t.Error("Nothing should be written for an invalid header")
	}
}

func TestNotAnEnvelope(t *testing.T) {
	_, err := NewReader(strings.NewReader("just some hidden bytes\nwith lines\n"))
	if !errors.Is(err, ErrNotEnvelope) {
		t.Fatalf("Expected ErrNotEnvelope, got %v", err)
	}
}

func TestCorruptFile(t *testing.T) {
	// Looks right but has broken JSON
	corruptData := `# THIS IMAGE CARRIES A SHARD...
-- HEADER --
{ "broken_json": "missing_bracket"
-- BODY --
payload`

	buf := bytes.NewBufferString(corruptData)
	_, err := NewReader(buf)

	if err == nil {
		t.Error("Reader should have failed on corrupt JSON, but succeeded")
	}
}

func TestHeaderValidate(t *testing.T) {
	valid := Header{OriginalFilename: "a", Index: 1, Total: 2, Threshold: 2, Size: 10}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	for name, mutate := range map[string]func(h *Header){
		"zero index":      func(h *Header) { h.Index = 0 },
		"zero threshold":  func(h *Header) { h.Threshold = 0 },
		"threshold>total": func(h *Header) { h.Threshold = 3 },
		"no size":         func(h *Header) { h.Size = 0 },
		"no name":         func(h *Header) { h.OriginalFilename = "" },
	} {
		h := valid
		mutate(&h)
		if err := h.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
