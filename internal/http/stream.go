package http

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblereader/internal/live"
)

// streamSnapshots relays a live projection as server-sent events until the
// client disconnects or the projection closes. Values go out as event,
// failures as "error" events; the stream stays open after a failure so a
// later successful reload still reaches the client.
func streamSnapshots[T any](c *gin.Context, name, event string, updates <-chan live.Snapshot[T], render func(T) any) {
	ctx := c.Request.Context()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap, open := <-updates:
			if !open {
				return false
			}
			if snap.Err != nil {
				log.Printf("[LIVE] %s stream: %v", name, snap.Err)
				c.SSEvent("error", ErrorResponse{Error: "failed to load " + name, Code: CodeStorageFailure})
				return true
			}
			c.SSEvent(event, render(snap.Value))
			return true
		}
	})
}
