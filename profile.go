package main

import (
	"log"
	"os"
	"runtime"
	"runtime/pprof"
)

// profile starts a cpu profile if cpupath is set, and returns a function that
// stops it and writes a heap profile if mempath is set.
func profile(cpupath, mempath string) func() {
	var stop func()
	if cpupath != "" {
		f, err := os.Create(cpupath)
		xcheckf(err, "creating cpu profile")
		err = pprof.StartCPUProfile(f)
		xcheckf(err, "starting cpu profile")
		stop = func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("closing cpu profile: %v", err)
			}
		}
	}

	return func() {
		if stop != nil {
			stop()
		}
		if mempath == "" {
			return
		}
		f, err := os.Create(mempath)
		xcheckf(err, "creating memory profile")
		defer f.Close()
		runtime.GC() // For up-to-date statistics.
		err = pprof.WriteHeapProfile(f)
		xcheckf(err, "writing memory profile")
	}
}
