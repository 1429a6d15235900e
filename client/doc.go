// Package client provides a unified entry point to all supported chat
// backends. It routes requests to the right provider adapter based on the
// model name, retries transient failures with exponential backoff, and
// emits operational events for observability.
//
// The client implements the root ChatProvider interface, so it can be
// handed directly to an agent:
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{Anthropic: os.Getenv("ANTHROPIC_API_KEY")},
//	    DefaultModel: "claude-sonnet-4-5",
//	})
//	a := agent.New(c, registry)
package client
