package types

import "time"

// SystemInfo is the body of GET /health.
type SystemInfo struct {
	Status         string      `json:"status"`
	AppName        string      `json:"app_name"`
	Environment    string      `json:"environment"`
	StartTime      time.Time   `json:"start_time"`
	Uptime         string      `json:"uptime"`
	GoVersion      string      `json:"go_version"`
	Architecture   string      `json:"architecture"`
	OS             string      `json:"os"`
	PID            int         `json:"pid"`
	Port           string      `json:"port"`
	StoreDriver    string      `json:"store_driver"`
	APIBaseURL     string      `json:"api_base_url"`
	ActiveSessions int         `json:"active_sessions"`
	Memory         MemoryStats `json:"memory"`
}

type MemoryStats struct {
	Alloc      uint64  `json:"alloc"`
	TotalAlloc uint64  `json:"total_alloc"`
	Sys        uint64  `json:"sys"`
	NumGC      uint32  `json:"num_gc"`
	Goroutines int     `json:"goroutines"`
	AllocMB    float64 `json:"alloc_mb"`
	SysMB      float64 `json:"sys_mb"`
}
