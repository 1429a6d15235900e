// Package google provides a Google Gemini adapter implementing the
// ChatProvider interface over the official genai SDK.
//
// Gemini has no native tool-call identifiers, so the adapter generates
// one per function call and maps tool results back to function names
// when rebuilding request contents.
package google
