package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"

	"github.com/campusnav/routing/config"
)

var (
	configPath = flag.String("config", "config.yml", "campus configuration file")
	mongoURI   = flag.String("mongo_uri", "", "mongo db uri")
	mapPathStr = flag.String("map", "", "campus map document [format: {fspath} or {db}.{col}]")
	cacheDir   = flag.String("cache", "", "input cache dir path (empty means disable cache)")
	listenAddr = flag.String("listen", "localhost:52110", "HTTP listening address")
	logLevel   = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "localhost:52111", "pprof listening address")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("invalid config: %s", err)
	}
	mapPath, err := NewPath(*mapPathStr)
	if err != nil {
		logrus.Fatalf("invalid map path: %s", err)
	}
	if mapPath == nil {
		logrus.Fatal("map path is required")
	}

	server := NewNavigationServer(cfg, *mongoURI, mapPath, *cacheDir)

	if *pprofAddr != "" {
		startHTTPDebugger(*pprofAddr)
	}

	if *benchmark {
		runBenchmark(server)
		return
	}

	s := &http.Server{
		Addr:    *listenAddr,
		Handler: server.Handler(),
	}

	// graceful shutdown: first signal closes the server, second forces exit
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1)
		}()
		s.Close()
		server.Close()
		os.Exit(0)
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	time.Sleep(1 * time.Second) // wait out the shutdown goroutine
	log.Info("routing closes")
}
