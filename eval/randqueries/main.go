package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-transit/pkg/graphbuilder"
	log "github.com/lintang-b-s/navigatorx-transit/pkg/logger"
	"github.com/lintang-b-s/navigatorx-transit/pkg/snapshot"
	"go.uber.org/zap"
)

var (
	snapshotPath = flag.String("snapshot", "./data/network.yaml", "transit network snapshot (.json, .yaml)")
	numQueries   = flag.Int("n", 10000, "number of random (start, end) pairs")
	numWorkers   = flag.Int("workers", 8, "number of worker goroutines")
	seed         = flag.Int64("seed", 42, "random seed for the query pairs")
	outPath      = flag.String("out", "rand_queries_result.csv", "result file")
)

var priorities = []pkg.Priority{pkg.PRIORITY_FARE, pkg.PRIORITY_DISTANCE, pkg.PRIORITY_STOPS}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	snap, err := snapshot.LoadFile(*snapshotPath)
	if err != nil {
		logger.Fatal("could not load snapshot", zap.Error(err))
	}
	g, stats := graphbuilder.NewGraphBuilder(logger).BuildGraph(snap.Stops, snap.Routes)
	logger.Info("graph built", zap.Int("stops", stats.NumStops), zap.Int("edges", stats.NumEdges),
		zap.Int("components", stats.NumComponents))

	type spParam struct {
		row int
		s   string
		t   string
	}

	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		queries[i] = spParam{
			row: i,
			s:   snap.Stops[rng.Intn(len(snap.Stops))].Name,
			t:   snap.Stops[rng.Intn(len(snap.Stops))].Name,
		}
	}

	fout, err := os.Create(*outPath)
	if err != nil {
		logger.Fatal("could not create result file", zap.Error(err))
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	defer w.Flush()

	fmt.Fprintln(w, "row start end priority found fare distance legs settled micros")

	lock := sync.Mutex{}

	type spResult struct {
		found    bool
		duration time.Duration
	}

	calcsSP := func(p spParam) []spResult {
		res := make([]spResult, len(priorities))
		rowRec := make([][]string, len(priorities))
		for j, priority := range priorities {
			before := time.Now()
			ld := routing.NewLexicographicDijkstra(g, priority)
			pr, found := ld.ShortestPath(p.s, p.t)
			duration := time.Since(before)

			fare, dist, legs := "-", "-", "-"
			if found {
				fare = strconv.FormatFloat(pr.GetTotalFare(), 'f', -1, 64)
				dist = strconv.FormatFloat(pr.GetTotalDistance(), 'f', -1, 64)
				legs = strconv.Itoa(pr.GetTotalStops())
			}
			rowRec[j] = []string{strconv.Itoa(p.row), strconv.Quote(p.s), strconv.Quote(p.t), priority.String(),
				strconv.FormatBool(found), fare, dist, legs, strconv.Itoa(ld.GetNumSettledNodes()),
				strconv.FormatInt(duration.Microseconds(), 10)}
			res[j] = spResult{found: found, duration: duration}
		}

		lock.Lock()
		for _, rec := range rowRec {
			for k, v := range rec {
				if k > 0 {
					fmt.Fprint(w, " ")
				}
				fmt.Fprint(w, v)
			}
			fmt.Fprintln(w)
		}
		lock.Unlock()

		if (p.row+1)%1000 == 0 {
			logger.Sugar().Infof("done query %v", p.row+1)
		}
		return res
	}

	workers := concurrent.NewWorkerPool[spParam, []spResult](*numWorkers, len(queries))
	workers.Start(calcsSP)
	for _, q := range queries {
		workers.AddJob(q)
	}
	workers.Close()
	go workers.Wait()

	var (
		total    = make([]time.Duration, len(priorities))
		numFound = make([]int, len(priorities))
	)
	for res := range workers.CollectResults() {
		for j, r := range res {
			total[j] += r.duration
			if r.found {
				numFound[j]++
			}
		}
	}

	for j, priority := range priorities {
		avg := time.Duration(0)
		if len(queries) > 0 {
			avg = total[j] / time.Duration(len(queries))
		}
		logger.Info("random queries done", zap.Stringer("priority", priority), zap.Int("queries", len(queries)),
			zap.Int("found", numFound[j]), zap.Duration("avg", avg))
	}
}
