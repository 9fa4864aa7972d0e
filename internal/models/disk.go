package models

// DiskUsage represents root filesystem usage in bytes
type DiskUsage struct {
	TotalBytes     uint64  `json:"totalBytes"`
	UsedBytes      uint64  `json:"usedBytes"`
	FreeBytes      uint64  `json:"freeBytes"`
	UsedPercentage float64 `json:"usedPercentage"`
}
