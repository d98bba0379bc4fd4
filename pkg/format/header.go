package format

import (
	"errors"
	"fmt"
)

// Standard Markers used to delineate sections in the text-friendly envelope
const (
	// MagicHeader is the human-readable introduction at the top of every envelope
	MagicHeader = `# THIS IMAGE CARRIES A SHARD OF A HIDDEN FILE.
# IT IS ONE OF %d SHARDS. THIS IS SHARD NUMBER %d.
# ANY %d OF THEM ARE ENOUGH TO REBUILD THE ORIGINAL FILE
# USING "steg gather" FROM:
# https://github.com/Beastly713/steg
`
	// HeaderMarker indicates the start of the JSON metadata
	HeaderMarker = "-- HEADER --"

	// BodyMarker indicates the start of the binary shard content
	BodyMarker = "-- BODY --"
)

// Header contains all the metadata required to gather shards back together.
type Header struct {
	// OriginalFilename is the name of the payload file before spreading
	OriginalFilename string `json:"originalFilename"`

	// Timestamp is the unix timestamp when the spread occurred.
	// Used to ensure we aren't mixing shards from different sessions.
	Timestamp int64 `json:"timestamp"`

	// Index is the shard index (1-based)
	Index int `json:"index"`

	// Total is the total number of shards created
	Total int `json:"total"`

	// Threshold is the number of shards required to recover the file
	Threshold int `json:"threshold"`

	// Size is the payload length before Reed-Solomon padding
	Size int64 `json:"size"`
}

// GroupID identifies the spread session a shard belongs to.
func (h *Header) GroupID() string {
	return fmt.Sprintf("%s|%d", h.OriginalFilename, h.Timestamp)
}

// Validate checks if the header contains sane values.
func (h *Header) Validate() error {
	if h.Index < 1 || h.Index > h.Total {
		return fmt.Errorf("invalid index %d for total %d", h.Index, h.Total)
	}
	if h.Threshold < 1 || h.Threshold > h.Total {
		return fmt.Errorf("invalid threshold %d for total %d", h.Threshold, h.Total)
	}
	if h.Size < 1 {
		return fmt.Errorf("invalid payload size %d", h.Size)
	}
	if h.OriginalFilename == "" {
		return errors.New("header is missing original filename")
	}
	return nil
}
