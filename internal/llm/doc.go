// Package llm implements the inference client for the local Ollama
// text-completion endpoint. The client owns retry, backoff and rate
// limiting; callers see a single Generate call per batch that either
// returns raw completion text or a terminal error.
package llm
