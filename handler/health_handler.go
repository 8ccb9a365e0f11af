package handler

import (
	"context"
	"net/http"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler reports service health: database and cache connectivity
// plus host CPU and memory usage.
func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"

	mongoStatus := "connected"
	if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		mongoStatus = "disconnected"
		status = "degraded"
	}

	redisStatus := "connected"
	if services.GlobalSessionCache == nil || !services.GlobalSessionCache.IsConnected() {
		redisStatus = "disconnected"
		status = "degraded"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": gin.H{
			"mongodb": mongoStatus,
			"redis":   redisStatus,
		},
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		},
		"timestamp": time.Now().UTC(),
	})
}
