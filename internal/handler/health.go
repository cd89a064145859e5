package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

// Health returns a JSON health check response. It verifies that the data
// file is still reachable on disk; internals like the path never leak.
func Health(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeStatus := "ok"
		if _, err := os.Stat(db.Path()); err != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"store": storeStatus,
		})
	}
}
