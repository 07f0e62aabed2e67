package agent

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
)

const cpuSampleInterval = time.Second

// CollectSystemInfo gathers the host identity sent at registration.
func CollectSystemInfo(version string) (*SystemInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to read hostname: %w", err)
	}

	info := &SystemInfo{
		Hostname:     hostname,
		IPAddress:    localIP(),
		Arch:         runtime.GOARCH,
		CPUCount:     runtime.NumCPU(),
		AgentVersion: version,
	}

	if hi, err := host.Info(); err == nil {
		info.OS = fmt.Sprintf("%s %s", hi.Platform, hi.PlatformVersion)
	} else {
		info.OS = runtime.GOOS
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}

	return info, nil
}

// CollectMetrics samples host utilization. Individual probe failures
// leave the corresponding fields zero rather than failing the sample.
func CollectMetrics() *MetricsPayload {
	m := &MetricsPayload{Timestamp: time.Now().UTC()}

	if pcts, err := cpu.Percent(cpuSampleInterval, false); err == nil && len(pcts) > 0 {
		m.CPUPercent = pcts[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		m.MemoryPercent = vm.UsedPercent
	}

	if counters, err := disk.IOCounters(); err == nil {
		for _, c := range counters {
			m.DiskReadBytes += c.ReadBytes
			m.DiskWriteBytes += c.WriteBytes
		}
	}

	if counters, err := gopsnet.IOCounters(false); err == nil && len(counters) > 0 {
		m.NetBytesSent = counters[0].BytesSent
		m.NetBytesRecv = counters[0].BytesRecv
	}

	return m
}

// localIP returns the first non-loopback, non-link-local IPv4 address.
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}

		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}

		return ip.String()
	}

	return ""
}
