package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tomastro/sortify/internal/model"
)

// mockInferenceClient is a test double that answers from a canned
// filename -> category table, or fails per configuration.
type mockInferenceClient struct {
	answers   map[string]string
	err       error
	failWhen  func(req model.ClassificationRequest) bool
	mu        sync.Mutex
	callCount int
}

func (m *mockInferenceClient) Generate(_ context.Context, req model.ClassificationRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if m.failWhen != nil && m.failWhen(req) {
		return "", fmt.Errorf("simulated inference failure for batch %s", req.BatchID)
	}

	// Echo back only the filenames this prompt asked about.
	mapping := make(map[string]string)
	for name, category := range m.answers {
		quoted, _ := json.Marshal(name)
		if strings.Contains(req.Prompt, string(quoted)) {
			mapping[name] = category
		}
	}

	out, err := json.Marshal(mapping)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (m *mockInferenceClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
