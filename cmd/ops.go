package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Beastly713/steg/pkg/imageio"
	"github.com/Beastly713/steg/pkg/pipeline"
	"github.com/Beastly713/steg/pkg/stego"
)

// encodeFile hides the file at payloadPath inside the carrier image and
// writes the result to outPath. Failures are reported in pipeline order:
// carrier, payload, length, capacity, output. The output file is only
// created once the stego image has been fully encoded.
func encodeFile(carrierPath, payloadPath, outPath string) (pipeline.Stats, error) {
	// 1. Load the carrier
	carrier, _, err := imageio.Load(carrierPath)
	if err != nil {
		return pipeline.Stats{}, err
	}

	// 2. Read and embed the payload
	payload, err := os.Open(payloadPath)
	if err != nil {
		return pipeline.Stats{}, fmt.Errorf("%w: %v", stego.ErrPayloadRead, err)
	}
	defer payload.Close()

	stegoImg, stats, err := pipeline.Embed(carrier, payload)
	if err != nil {
		return stats, err
	}

	log.Debug().
		Int("width", stats.Width).
		Int("height", stats.Height).
		Uint64("capacityBits", stats.CapacityBits).
		Uint64("frameBits", stats.FrameBits).
		Msg("payload embedded")

	// 3. Serialize and write
	format, err := imageio.FormatFromPath(outPath)
	if err != nil {
		return stats, err
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, stegoImg, format); err != nil {
		return stats, err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return stats, fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}
	return stats, nil
}

// decodeFile extracts the payload hidden in the image at stegoPath and
// writes it to outPath. An empty payload returns stego.ErrEmptyPayload
// and writes nothing.
func decodeFile(stegoPath, outPath string, overwrite bool) (int, error) {
	src, err := os.Open(stegoPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", stego.ErrImageLoad, err)
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := pipeline.Reveal(src, &buf); err != nil {
		return 0, err
	}

	if _, err := os.Stat(outPath); err == nil && !overwrite {
		return 0, fmt.Errorf("%w: %s already exists, use --overwrite to replace it", stego.ErrOutputWrite, outPath)
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}
	return buf.Len(), nil
}

// statusLine renders an outcome the way the interactive status bar shows it.
func statusLine(success string, err error) string {
	switch {
	case err == nil:
		return "Success! " + success
	case stego.IsWarning(err):
		return "Warning: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
