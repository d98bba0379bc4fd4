package sharding

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestSplitAndJoin(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	// Config: 5 shards total, 3 required to recover
	total := 5
	threshold := 3

	splitter, err := NewSplitter(total, threshold)
	if err != nil {
		t.Fatalf("Failed to create splitter: %v", err)
	}

	// Odd size so Split has to pad the last data shard.
	originalData := make([]byte, 1024*10+7)
	r.Read(originalData)

	shards, err := splitter.Split(originalData)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(shards) != total {
		t.Errorf("Expected %d shards, got %d", total, len(shards))
	}

	// Lose shards 0 and 4 (the first data shard and a parity shard).
	availableShards := make(map[int][]byte)
	availableShards[1] = shards[1].Data
	availableShards[2] = shards[2].Data
	availableShards[3] = shards[3].Data

	restoredData, err := splitter.Join(availableShards, len(originalData))
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	if !bytes.Equal(originalData, restoredData) {
		t.Fatal("Restored data does not match original data")
	}
}

func TestJoinBelowThreshold(t *testing.T) {
	splitter, err := NewSplitter(4, 3)
	if err != nil {
		t.Fatal(err)
	}

	shards, err := splitter.Split([]byte("not enough pieces survive"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = splitter.Join(map[int][]byte{0: shards[0].Data, 3: shards[3].Data}, 0)
	if !errors.Is(err, ErrNotEnoughShards) {
		t.Fatalf("Expected ErrNotEnoughShards, got %v", err)
	}
}

func TestNewSplitterValidation(t *testing.T) {
	for _, tc := range []struct{ total, threshold int }{
		{3, 0},
		{2, 3},
		{300, 2},
	} {
		if _, err := NewSplitter(tc.total, tc.threshold); err == nil {
			t.Errorf("NewSplitter(%d, %d) should fail", tc.total, tc.threshold)
		}
	}
}

func TestSplitEmpty(t *testing.T) {
	splitter, err := NewSplitter(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := splitter.Split(nil); err == nil {
		t.Fatal("Split should reject empty data")
	}
}
