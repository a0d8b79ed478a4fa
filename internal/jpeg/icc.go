package jpeg

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// ICC profiles ride in APP2 markers: a 12-byte "ICC_PROFILE\0" tag, a 1-based
// sequence number, a total chunk count, then up to 65519 profile bytes.
const (
	iccMarkerTag     = "ICC_PROFILE\x00"
	iccHeaderSize    = 14
	maxChunkDataSize = 65535 - 2 - iccHeaderSize
)

// ExtractICC reassembles an ICC profile from raw APP2 marker payloads,
// byte for byte. Markers that are not ICC chunks are skipped. Returns
// (nil, nil) when no ICC chunks are present.
func ExtractICC(markers [][]byte) ([]byte, error) {
	type iccChunk struct {
		seq  int
		data []byte
	}
	var chunks []iccChunk
	total := 0

	for _, m := range markers {
		if len(m) < iccHeaderSize || string(m[:12]) != iccMarkerTag {
			continue
		}
		seq, count := int(m[12]), int(m[13])
		if seq == 0 || seq > count {
			return nil, fmt.Errorf("invalid ICC chunk sequence %d/%d", seq, count)
		}
		if total == 0 {
			total = count
		} else if count != total {
			return nil, fmt.Errorf("inconsistent ICC chunk count: %d vs %d", count, total)
		}
		chunks = append(chunks, iccChunk{seq: seq, data: m[iccHeaderSize:]})
	}

	if len(chunks) == 0 {
		return nil, nil
	}
	if len(chunks) != total {
		return nil, fmt.Errorf("expected %d ICC chunks, found %d", total, len(chunks))
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].seq < chunks[j].seq })

	var profile bytes.Buffer
	for _, c := range chunks {
		profile.Write(c.data)
	}
	return profile.Bytes(), nil
}

// ChunkICC splits a profile into APP2-ready marker payloads, each carrying
// the tag header so that ExtractICC (or any conforming reader) restores the
// original bytes exactly.
func ChunkICC(profile []byte) ([][]byte, error) {
	if len(profile) == 0 {
		return nil, errors.New("empty ICC profile")
	}
	numChunks := (len(profile) + maxChunkDataSize - 1) / maxChunkDataSize
	if numChunks > 255 {
		return nil, fmt.Errorf("ICC profile too large: needs %d chunks (max 255)", numChunks)
	}

	chunks := make([][]byte, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * maxChunkDataSize
		end := start + maxChunkDataSize
		if end > len(profile) {
			end = len(profile)
		}
		chunk := make([]byte, iccHeaderSize, iccHeaderSize+end-start)
		copy(chunk, iccMarkerTag)
		chunk[12] = byte(i + 1)
		chunk[13] = byte(numChunks)
		chunks = append(chunks, append(chunk, profile[start:end]...))
	}
	return chunks, nil
}
