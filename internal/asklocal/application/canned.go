package application

import (
	"bytes"
	"encoding/json"
	"io"
)

const (
	NoListingsMessage       = "No approved listings yet. Try again later."
	NoRegionListingsMessage = "No listings in your selected areas yet. Try other parishes or browse the directory."
)

type cannedDelta struct {
	Content string `json:"content"`
}

type cannedChoice struct {
	Delta cannedDelta `json:"delta"`
}

type cannedChunk struct {
	Choices []cannedChoice `json:"choices"`
}

// CannedStream frames message as a single delta event followed by the done sentinel,
// matching the provider's stream framing.
func CannedStream(message string) io.ReadCloser {
	payload, _ := json.Marshal(cannedChunk{Choices: []cannedChoice{{Delta: cannedDelta{Content: message}}}})

	var buf bytes.Buffer
	buf.WriteString("data: ")
	buf.Write(payload)
	buf.WriteString("\n\ndata: [DONE]\n\n")
	return io.NopCloser(&buf)
}
