// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/angelamos/kol-backend/internal/core"
)

type Handler struct {
	storePing  func(ctx context.Context) error
	redisPing  func(ctx context.Context) error
	redisStats func() *redis.PoolStats
	storeInfo  StoreInfo
}

type HandlerConfig struct {
	StorePing  func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
	RedisStats func() *redis.PoolStats
	StoreInfo  StoreInfo
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		storePing:  cfg.StorePing,
		redisPing:  cfg.RedisPing,
		redisStats: cfg.RedisStats,
		storeInfo:  cfg.StoreInfo,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/store", h.GetStoreStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := SystemStatsResponse{
		Store:   h.getStoreStatus(ctx),
		Redis:   h.getRedisStatus(ctx),
		Runtime: collectRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetStoreStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getStoreStatus(r.Context()))
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStatus(r.Context()))
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, collectRuntimeStats())
}

func (h *Handler) getStoreStatus(ctx context.Context) StoreStatus {
	healthy := true
	if h.storePing != nil {
		if err := h.storePing(ctx); err != nil {
			healthy = false
		}
	}

	return StoreStatus{
		Healthy: healthy,
		Info:    h.storeInfo,
	}
}

func (h *Handler) getRedisStatus(ctx context.Context) RedisStatus {
	healthy := true
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			healthy = false
		}
	}

	return RedisStatus{
		Healthy: healthy,
		Stats:   h.getRedisPoolStats(),
	}
}

func (h *Handler) getRedisPoolStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

func collectRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

type SystemStatsResponse struct {
	Store   StoreStatus  `json:"store"`
	Redis   RedisStatus  `json:"redis"`
	Runtime RuntimeStats `json:"runtime"`
}

type StoreStatus struct {
	Healthy bool      `json:"healthy"`
	Info    StoreInfo `json:"info"`
}

type StoreInfo struct {
	Region    string `json:"region"`
	KOLTable  string `json:"kol_table"`
	UserTable string `json:"user_table"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc"`
	MemSys       uint64 `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}
