// 18 Oct 2026

// Package arch says what sort of machine we are running on. It is
// used for the header line printed at startup and for -arch.
package arch

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"

	. "github.com/xflouris/bpp-tools/pkg/common"
)

// Name is the operating system and processor, like linux_x86_64.
func Name() string {
	cpu := runtime.GOARCH
	switch cpu {
	case "amd64":
		cpu = "x86_64"
	case "arm64":
		cpu = "aarch64"
	case "386":
		cpu = "i386"
	}
	return runtime.GOOS + "_" + cpu
}

// MemTotal is the physical memory in bytes, or zero if we cannot find out.
func MemTotal() uint64 { return memory.TotalMemory() }

// MemUsed is how much memory the Go runtime has taken from the system.
func MemUsed() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Sys
}

// Cores is the number of processors we may use.
func Cores() int { return runtime.NumCPU() }

// Header is the line printed when the program starts.
func Header() string {
	return fmt.Sprintf("%s %s_%s, %1.fGB RAM, %d cores",
		ProgName, Version, Name(), float64(MemTotal())/1024/1024/1024, Cores())
}

// Features lists the SIMD extensions the processor has, in the
// order sse, sse2 .. avx2.
func Features() []string {
	c := cpuid.CPU
	all := []struct {
		name string
		has  bool
	}{
		{"mmx", c.MMX()},
		{"sse", c.SSE()},
		{"sse2", c.SSE2()},
		{"sse3", c.SSE3()},
		{"ssse3", c.SSSE3()},
		{"sse4.1", c.SSE4()},
		{"sse4.2", c.SSE42()},
		{"popcnt", c.Popcnt()},
		{"avx", c.AVX()},
		{"avx2", c.AVX2()},
	}
	var r []string
	for _, f := range all {
		if f.has {
			r = append(r, f.name)
		}
	}
	return r
}

// Report writes what we know about the processor and memory.
func Report(w io.Writer) error {
	c := cpuid.CPU
	brand := strings.TrimSpace(c.BrandName)
	if brand == "" {
		brand = "unknown"
	}
	threads := max(c.ThreadsPerCore, 1)
	_, err := fmt.Fprintf(w, "CPU: %s\nArchitecture: %s\nLogical cores: %d\nThreads per core: %d\n"+
		"Physical memory: %.1f GB\nDetected CPU features: %s\n",
		brand, Name(), Cores(), threads,
		float64(MemTotal())/1024/1024/1024, strings.Join(Features(), " "))
	return err
}
