package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HealthSample is one reading of the host the backend runs on, shown on the
// admin dashboard next to the visitor counters.
type HealthSample struct {
	CapturedAt        time.Time `json:"capturedAt" db:"captured_at"`
	ProcessMemBytes   int64     `json:"processMemBytes" db:"process_mem_bytes"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes" db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes" db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `json:"diskTotalBytes" db:"disk_total_bytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes" db:"disk_used_bytes"`
	ProcessCPULoad    float64   `json:"processCpuLoad" db:"process_cpu_load"`
	SystemCPULoad     float64   `json:"systemCpuLoad" db:"system_cpu_load"`
}

// DashboardSnapshot is what the live dashboard socket pushes to admins.
type DashboardSnapshot struct {
	Health   HealthSample `json:"health"`
	Visitors VisitorStats `json:"visitors"`
}

// CaptureHealth samples process and host metrics and persists them.
func CaptureHealth(db *sqlx.DB, diskPath string) (HealthSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		if info, _ := proc.MemoryInfo(); info != nil {
			processRSS = int64(info.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	systemCPU := 0.0
	if perc, _ := cpu.Percent(0, false); len(perc) > 0 {
		systemCPU = perc[0] / 100.0
	}
	sample := HealthSample{
		CapturedAt:        time.Now().UTC(),
		ProcessMemBytes:   processRSS,
		SystemMemoryTotal: int64(memStat.Total),
		SystemMemoryUsed:  int64(memStat.Total - memStat.Available),
		DiskTotalBytes:    int64(diskStat.Total),
		DiskUsedBytes:     int64(diskStat.Used),
		ProcessCPULoad:    processCPU,
		SystemCPULoad:     systemCPU,
	}

	_, err = db.Exec(`
INSERT INTO server_health_samples (
  id, captured_at, process_mem_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, uuid.NewString(), sample.CapturedAt, sample.ProcessMemBytes, sample.SystemMemoryTotal,
		sample.SystemMemoryUsed, sample.DiskTotalBytes, sample.DiskUsedBytes, sample.ProcessCPULoad, sample.SystemCPULoad)
	if err != nil {
		return HealthSample{}, err
	}
	return sample, nil
}

// LatestHealth returns the most recent samples in chronological order.
func LatestHealth(db *sqlx.DB, limit int) ([]HealthSample, error) {
	rows := []HealthSample{}
	if err := db.Select(&rows, `
SELECT captured_at, process_mem_bytes, system_memory_total_bytes,
       system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
FROM server_health_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// DashboardHub fans snapshots out to connected admin websockets. Add and
// Remove are called from handler goroutines, so the client map is behind a
// mutex.
type DashboardHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan DashboardSnapshot
}

func NewDashboardHub() *DashboardHub {
	return &DashboardHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan DashboardSnapshot, 16),
	}
}

func (h *DashboardHub) Run(ctx context.Context) {
	for {
		select {
		case snapshot := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(snapshot)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Broadcast drops the snapshot when the channel is full; a slow dashboard
// must not back up the sampling loop.
func (h *DashboardHub) Broadcast(snapshot DashboardSnapshot) {
	select {
	case h.ch <- snapshot:
	default:
	}
}

func (h *DashboardHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *DashboardHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
