//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"serialmodes/core"
	"serialmodes/host/config"
	"serialmodes/protocol"
	"serialmodes/sim"
)

var (
	configPath = flag.String("config", "", "YAML config file (defaults apply when empty)")
	dumpEvents = flag.Bool("events", false, "Dump the event ring on exit")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	core.SetDebugWriter(func(s string) { glog.Info(s) })
	core.SetDebugEnabled(bool(glog.V(1)))
	core.InitAsyncDebug()

	s := sim.New(sim.Options{
		Out:               os.Stdout,
		LEDOut:            os.Stderr,
		Millivolts:        cfg.Sim.Millivolts,
		TemperatureTenths: cfg.Sim.TemperatureTenths,
		StripNewlines:     cfg.Sim.StripNewlines,
	}, cfg.Sim.Timing)
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	glog.Infof("serialmodes-sim %s: blink %v/%v, sample every %v",
		protocol.Version, cfg.Sim.Timing.BlinkOn, cfg.Sim.Timing.BlinkOff, cfg.Sim.Timing.SampleInterval)
	s.Boot()

	if err := s.Run(ctx, os.Stdin); err != nil && err != context.Canceled {
		glog.Errorf("input: %v", err)
	}
	// Input ended; keep the running mode alive until interrupted
	<-ctx.Done()

	if *dumpEvents {
		core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		core.DumpEvents()
	}
}
