// Package prompt renders classification batches into completion requests.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tomastro/sortify/internal/model"
)

const promptTemplate = `You are a file organizer. Assign each of the following filenames to exactly one of these categories: %s.

Rules:
1. Judge only by the filename and extension (e.g. .mp3/.wav files are Music, .jpg/.png files are Images).
2. Do NOT translate foreign or non-Latin filenames. Classify them by file type alone and repeat the filename exactly as given.
3. Spell every category exactly as listed above.
4. Respond with ONLY a JSON object mapping each filename to its category. No commentary, no markdown.

Filenames: %s
Example output: {"song.mp3": "Music", "photo.jpg": "Images", "invoice.pdf": "Documents"}`

// Build renders one batch into an immutable classification request. Every
// display name is embedded verbatim: the filename list is JSON-encoded, so
// non-Latin scripts survive byte for byte. Pure function, no side effects.
func Build(batch model.Batch, modelName, apiURL string) model.ClassificationRequest {
	names := make([]string, 0, len(batch.Entries))
	for _, entry := range batch.Entries {
		names = append(names, entry.Name)
	}

	// Marshalling a []string cannot fail.
	namesJSON, _ := json.Marshal(names)

	labels := make([]string, 0, len(model.Taxonomy()))
	for _, c := range model.Taxonomy() {
		labels = append(labels, string(c))
	}

	return model.ClassificationRequest{
		BatchID: batch.ID,
		Prompt:  fmt.Sprintf(promptTemplate, strings.Join(labels, ", "), namesJSON),
		Model:   modelName,
		APIURL:  apiURL,
	}
}
