package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"spectro/cmd"
	"spectro/internal/audio"
	"spectro/internal/log"
)

// main runs in three phases:
//
// 1. Startup (cold path): parse configuration, initialize PortAudio,
// handle one-off commands like device listing.
//
// 2. Concurrent (hot path): the capture loop reads fixed-size blocks,
// transforms and normalizes them, and publishes spectrum frames to the
// store, recording and streaming on the side.
//
// 3. Shutdown (cold path): on SIGINT/SIGTERM, stop recording, join the
// capture loop and release the device.
func main() {
	// One thread for the capture loop, one for I/O and serving.
	runtime.GOMAXPROCS(2)

	config, err := cmd.ParseArgs()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if config.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	if err := audio.Initialize(); err != nil {
		log.Fatalf("%v", err)
	}
	defer audio.Terminate()

	if config.Command == "list" {
		if err := audio.ListDevices(); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	source := audio.NewDeviceSource(config.DeviceID, config.SampleRate, config.FFTSize, false)
	engine, err := audio.NewEngine(config, source)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := engine.Start(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("analyzing %d-sample blocks at %.0f Hz (%s mode)",
		config.FFTSize, config.SampleRate, engine.Mode())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	if err := engine.Close(); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	if config.Record {
		fmt.Printf("\nRecording saved to: %s\n", config.OutputFile)
	}
}
