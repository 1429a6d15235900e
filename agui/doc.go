// Package agui maps the run event stream onto the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, event-based protocol that
// standardizes how AI agents connect to user-facing applications. This
// package converts loop events to AG-UI events 1:1 so any AG-UI
// compatible frontend can render a run live.
//
// The package does NOT provide HTTP handlers or transports. Wire the
// mapped events into the AG-UI SDK's SSE writer or your own transport:
//
//	mapper := agui.NewMapper(threadID, runID)
//	for ev := range a.RunStream(ctx, conv, input) {
//	    if mapped := mapper.MapEvent(ev); mapped != nil {
//	        writeEvent(mapped)
//	    }
//	}
package agui
