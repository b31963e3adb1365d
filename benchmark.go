package main

import (
	"flag"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campusnav/routing/navigation"
	"github.com/campusnav/routing/navigation/geo"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random routing count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

type benchmarkPair struct {
	start, end geo.Location
}

// runBenchmark routes between random building pairs of the loaded campus
// and reports the aggregate timing.
func runBenchmark(server *NavigationServer) {
	logrus.SetLevel(logrus.WarnLevel)
	if len(server.doc.Buildings) < 2 {
		log.Fatal("benchmark needs at least 2 buildings in the map document")
	}
	e := rand.New(rand.NewSource(*benchmarkSeed))
	pairs := make([]benchmarkPair, *benchmarkCount)
	for i := range pairs {
		a := server.doc.Buildings[e.Intn(len(server.doc.Buildings))]
		b := server.doc.Buildings[e.Intn(len(server.doc.Buildings))]
		pairs[i] = benchmarkPair{
			start: geo.Location{Lat: a.Location.Lat, Lon: a.Location.Lon},
			end:   geo.Location{Lat: b.Location.Lat, Lon: b.Location.Lon},
		}
	}

	opts := navigation.DefaultOptions()
	start := time.Now()
	var wg sync.WaitGroup
	var success atomic.Int32
	if *benchmarkCPU == 1 {
		for _, p := range pairs {
			if _, ok := server.engine.FindRoute(p.start, p.end, opts).(navigation.Success); ok {
				success.Add(1)
			}
		}
	} else {
		runtime.GOMAXPROCS(*benchmarkCPU)
		wg.Add(len(pairs))
		for _, p := range pairs {
			go func(p benchmarkPair) {
				defer wg.Done()
				if _, ok := server.engine.FindRoute(p.start, p.end, opts).(navigation.Success); ok {
					success.Add(1)
				}
			}(p)
		}
		wg.Wait()
	}
	timeCost := time.Since(start) * time.Duration(*benchmarkCPU)
	log.Error(
		"benchmark finished", "\n",
		"count:", *benchmarkCount, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(*benchmarkCount), "\n",
		"success:", success.Load(), "\n",
	)
}
