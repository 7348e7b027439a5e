// Command rtprobe initializes the GPU backend and reports the selected
// adapter. Useful for checking whether a machine can run the renderer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rtgpu "github.com/CreatorSiSo/rt-gpu"
	"github.com/CreatorSiSo/rt-gpu/backend"
)

func main() {
	var (
		verbose = flag.Bool("verbose", false, "enable debug logging")
		limits  = flag.Bool("limits", false, "print device limits")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	rtgpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	b := backend.NewBackend()
	if err := b.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "rtprobe: GPU unavailable: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	info := b.GPUInfo()
	if info == nil {
		fmt.Fprintln(os.Stderr, "rtprobe: no adapter info")
		os.Exit(1)
	}

	fmt.Printf("GPU:    %s\n", info.Name)
	fmt.Printf("Type:   %s\n", info.DeviceType)
	fmt.Printf("API:    %s\n", info.Backend)
	if info.Vendor != "" {
		fmt.Printf("Vendor: %s\n", info.Vendor)
	}
	if info.Driver != "" {
		fmt.Printf("Driver: %s\n", info.Driver)
	}

	if *limits {
		if err := backend.CheckDeviceLimits(b.Device()); err != nil {
			fmt.Fprintf(os.Stderr, "rtprobe: limits unavailable: %v\n", err)
			os.Exit(1)
		}
	}
}
