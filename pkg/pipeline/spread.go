package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/Beastly713/steg/pkg/format"
	"github.com/Beastly713/steg/pkg/sharding"
	"github.com/Beastly713/steg/pkg/stego"
)

// SpreadConfig holds the parameters for the spread operation
type SpreadConfig struct {
	Total     int
	Threshold int

	// Name and Timestamp are recorded in every shard header and together
	// identify the spread session.
	Name      string
	Timestamp int64
}

// ShardFile is one parsed shard envelope.
type ShardFile struct {
	Header *format.Header
	Body   []byte
}

// SpreadPipeline orchestrates the flow: Read -> Shard -> Wrap.
// It returns one envelope per shard, in index order, ready to be hidden in
// its own carrier image.
func SpreadPipeline(input io.Reader, config SpreadConfig) ([][]byte, error) {
	// 1. Read Input
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrPayloadRead, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("nothing to spread: payload is empty")
	}

	// 2. Shard (Reed-Solomon)
	splitter, err := sharding.NewSplitter(config.Total, config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize splitter: %w", err)
	}

	shards, err := splitter.Split(data)
	if err != nil {
		return nil, fmt.Errorf("sharding failed: %w", err)
	}

	// 3. Wrap every shard in an envelope
	envelopes := make([][]byte, len(shards))
	for i, s := range shards {
		header := &format.Header{
			OriginalFilename: config.Name,
			Timestamp:        config.Timestamp,
			Index:            s.Index + 1, // 1-based for user friendliness
			Total:            config.Total,
			Threshold:        config.Threshold,
			Size:             int64(len(data)),
		}

		var buf bytes.Buffer
		if err := format.NewWriter(&buf).Write(header, s.Data); err != nil {
			return nil, fmt.Errorf("failed to wrap shard %d: %w", header.Index, err)
		}
		envelopes[i] = buf.Bytes()
	}

	return envelopes, nil
}

// ParseEnvelope reads a shard envelope recovered from a stego image.
func ParseEnvelope(envelope []byte) (*ShardFile, error) {
	reader, err := format.NewReader(bytes.NewReader(envelope))
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(reader.Body)
	if err != nil {
		return nil, err
	}
	return &ShardFile{Header: reader.Header, Body: body}, nil
}

// GroupShards buckets shards by spread session. Group keys are returned sorted.
func GroupShards(shards []*ShardFile) (map[string][]*ShardFile, []string) {
	groups := make(map[string][]*ShardFile)
	for _, s := range shards {
		id := s.Header.GroupID()
		groups[id] = append(groups[id], s)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return groups, keys
}

// JoinPipeline orchestrates the reverse: Unshard -> Trim.
// All shards must come from the same spread session.
func JoinPipeline(group []*ShardFile) ([]byte, error) {
	if len(group) == 0 {
		return nil, fmt.Errorf("no shards to join")
	}
	ref := group[0].Header

	// 1. Collect shards, converting the 1-based header index to the 0-based RS index
	shardMap := make(map[int][]byte)
	for _, s := range group {
		h := s.Header
		if h.GroupID() != ref.GroupID() || h.Total != ref.Total || h.Threshold != ref.Threshold || h.Size != ref.Size {
			return nil, fmt.Errorf("shard %d of %s does not match the rest of its group", h.Index, h.OriginalFilename)
		}
		shardMap[h.Index-1] = s.Body
	}

	// 2. Unshard (Reed-Solomon Join)
	splitter, err := sharding.NewSplitter(ref.Total, ref.Threshold)
	if err != nil {
		return nil, err
	}

	data, err := splitter.Join(shardMap, int(ref.Size))
	if err != nil {
		return nil, fmt.Errorf("reconstruction failed: %w", err)
	}

	return data, nil
}
