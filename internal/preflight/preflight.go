// Package preflight checks local resources before a run touches the
// filesystem or the network, so a doomed run fails before any remote
// resource is provisioned.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Report describes the local resources backing a work directory.
type Report struct {
	WorkDir        string `json:"work_dir"`
	DiskFreeBytes  uint64 `json:"disk_free_bytes"`
	DiskTotalBytes uint64 `json:"disk_total_bytes"`
	MemFreeBytes   uint64 `json:"mem_free_bytes"`
	MemTotalBytes  uint64 `json:"mem_total_bytes"`
}

// Check inspects the filesystem behind workDir and system memory.
// It fails when free disk space is below minFreeMB.
func Check(workDir string, minFreeMB uint64) (*Report, error) {
	usage, err := disk.Usage(nearestExisting(workDir))
	if err != nil {
		return nil, fmt.Errorf("checking disk usage for %s: %w", workDir, err)
	}

	report := &Report{
		WorkDir:        workDir,
		DiskFreeBytes:  usage.Free,
		DiskTotalBytes: usage.Total,
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		report.MemFreeBytes = vm.Available
		report.MemTotalBytes = vm.Total
	}

	minFree := minFreeMB * 1024 * 1024
	if usage.Free < minFree {
		return report, fmt.Errorf("only %d MB free under %s, need at least %d MB",
			usage.Free/1024/1024, workDir, minFreeMB)
	}

	return report, nil
}

// nearestExisting walks up from path until a directory that exists,
// since the work dir may not have been created yet.
func nearestExisting(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
