package models

// CPULoad holds the load average triple and logical core count
type CPULoad struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
	Cores  int     `json:"cores"`
}

// MemoryUsage represents physical memory usage in bytes
type MemoryUsage struct {
	TotalBytes     uint64  `json:"totalBytes"`
	UsedBytes      uint64  `json:"usedBytes"`
	FreeBytes      uint64  `json:"freeBytes"`
	UsedPercentage float64 `json:"usedPercentage"`
}

// SystemSnapshot combines host metrics for the system widget
type SystemSnapshot struct {
	CPU      CPULoad           `json:"cpu"`
	Memory   MemoryUsage       `json:"memory"`
	Disk     Result[DiskUsage] `json:"disk"`
	Platform string            `json:"platform"`
	Release  string            `json:"release"`
}
