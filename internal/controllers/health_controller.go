package controllers

import (
	"fmt"
	"net/http"
	"stationd/internal/catalog"
	"stationd/internal/starred"
	"time"
)

type HealthController struct {
	registry  catalog.ServerRegistryInterface
	store     starred.StoreInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Server        string  `json:"server"`
	Score         int     `json:"score"`
	Servers       int     `json:"servers"`
	Starred       int     `json:"starred"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Server:        hc.registry.Current(),
		Score:         hc.registry.Score(),
		Servers:       len(hc.registry.Servers()),
		Starred:       hc.store.Len(),
	}
	if resp.Server == "" {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(registry catalog.ServerRegistryInterface, store starred.StoreInterface) *HealthController {
	return &HealthController{
		registry:  registry,
		store:     store,
		startTime: time.Now(),
	}
}
