package controllers

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

const streamKeepalive = 30 * time.Second

type StreamController struct {
	*Deps
}

// Stream pushes the full collection as a "snapshot" event on connect and
// after every change. Clients replace their copy on each event.
func (sc *StreamController) Stream(c *gin.Context) {
	coll, err := store.ParseCollection(c.Param("collection"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
		return
	}

	snapshots, cancel, err := sc.Store.Subscribe(c.Request.Context(), coll)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	log.Printf("[STREAM] %s subscriber connected", coll)
	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{
				Event: "snapshot",
				Id:    strconv.FormatUint(snap.Version, 10),
				Data:  snap,
			})
			return true
		case <-keepalive.C:
			c.SSEvent("ping", gin.H{"timestamp": time.Now().Unix()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	log.Printf("[STREAM] %s subscriber gone", coll)
}
