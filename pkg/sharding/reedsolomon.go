package sharding

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// ErrNotEnoughShards indicates fewer than Threshold shards survived.
var ErrNotEnoughShards = errors.New("not enough shards to reconstruct")

// Shard represents a single fragment of the spread payload
type Shard struct {
	Index int    // 0-based index
	Data  []byte // The slice of payload (or parity) carried by one image
}

// Splitter handles erasure coding (Reed-Solomon)
type Splitter struct {
	Total     int
	Threshold int
}

func NewSplitter(total, threshold int) (*Splitter, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1")
	}
	if threshold > total {
		return nil, fmt.Errorf("threshold cannot exceed total shards")
	}
	if total > 256 {
		return nil, fmt.Errorf("total cannot exceed 256 shards")
	}
	return &Splitter{
		Total:     total,
		Threshold: threshold,
	}, nil
}

// Split takes a contiguous byte slice and splits it into Total shards
// using Reed-Solomon erasure coding. Any Threshold of them rebuild the data.
func (s *Splitter) Split(data []byte) ([]Shard, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot split empty data")
	}

	enc, err := reedsolomon.New(s.Threshold, s.Total-s.Threshold)
	if err != nil {
		return nil, err
	}

	// Split the data into equal parts.
	shardsBytes, err := enc.Split(data)
	if err != nil {
		return nil, err
	}

	// Generate parity shards
	if err := enc.Encode(shardsBytes); err != nil {
		return nil, err
	}

	result := make([]Shard, s.Total)
	for i, data := range shardsBytes {
		result[i] = Shard{Index: i, Data: data}
	}

	return result, nil
}

// Join reverses the Split process.
// originalSize trims the zero padding added by Split; 0 keeps the padded data.
func (s *Splitter) Join(shards map[int][]byte, originalSize int) ([]byte, error) {
	enc, err := reedsolomon.New(s.Threshold, s.Total-s.Threshold)
	if err != nil {
		return nil, err
	}

	// Prepare the slice for the library.
	reconstructShards := make([][]byte, s.Total)
	validCount := 0

	// Populate the shards we have
	for i := 0; i < s.Total; i++ {
		if data, ok := shards[i]; ok {
			reconstructShards[i] = data
			validCount++
		}
	}

	if validCount < s.Threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShards, validCount, s.Threshold)
	}

	// Reconstruct the missing data shards
	if err := enc.ReconstructData(reconstructShards); err != nil {
		return nil, fmt.Errorf("reconstruction failed: %w", err)
	}

	// Concatenate the data shards directly instead of enc.Join, which
	// needs the exact size up front.
	var buf bytes.Buffer
	for i := 0; i < s.Threshold; i++ {
		if len(reconstructShards[i]) == 0 {
			return nil, fmt.Errorf("unexpected empty shard at index %d", i)
		}
		buf.Write(reconstructShards[i])
	}

	joined := buf.Bytes()

	if originalSize > 0 {
		if len(joined) < originalSize {
			return nil, fmt.Errorf("reconstructed data shorter than expected size")
		}
		joined = joined[:originalSize]
	}

	return joined, nil
}
