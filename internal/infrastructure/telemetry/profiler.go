package telemetry

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// ProfilerConfig configures continuous profiling with Pyroscope.
type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	// Types lists profile names such as "cpu", "alloc_space" or "mutex";
	// empty means cpu and heap
	Types []string
	// LinkSpans labels CPU samples with the active span so traces can jump
	// to their profile
	LinkSpans bool
}

var profileTypes = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"inuse_objects": {pyroscope.ProfileInuseObjects},
	"inuse_space":   {pyroscope.ProfileInuseSpace},
	"heap":          {pyroscope.ProfileAllocSpace, pyroscope.ProfileInuseSpace},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// Profiler pushes pprof profiles to Pyroscope until stopped.
type Profiler struct {
	session *pyroscope.Profiler
	once    sync.Once
}

// StartProfiler starts profiling when cfg.Enabled is set; otherwise the
// returned profiler does nothing.
func StartProfiler(cfg ProfilerConfig, log *zap.Logger) (*Profiler, error) {
	if !cfg.Enabled {
		return &Profiler{}, nil
	}
	if cfg.ServerAddress == "" {
		return nil, errors.New("profiling.server_address is required when profiling is enabled")
	}
	types, err := parseProfileTypes(cfg.Types)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("pyroscope")

	for _, t := range types {
		switch t {
		case pyroscope.ProfileMutexCount:
			runtime.SetMutexProfileFraction(5)
		case pyroscope.ProfileBlockCount:
			runtime.SetBlockProfileRate(5)
		}
	}

	tags := map[string]string{}
	if host, _ := os.Hostname(); host != "" {
		tags["hostname"] = host
	}
	session, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          log.Sugar(),
		Tags:            tags,
		ProfileTypes:    types,
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	if cfg.LinkSpans {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(otel.GetTracerProvider()))
	}
	log.Info("profiling",
		zap.String("server", cfg.ServerAddress),
		zap.Int("profile_types", len(types)),
		zap.Bool("span_profiles", cfg.LinkSpans))
	return &Profiler{session: session}, nil
}

// parseProfileTypes expands profile names, removing duplicates.
func parseProfileTypes(names []string) ([]pyroscope.ProfileType, error) {
	if len(names) == 0 {
		names = []string{"cpu", "heap"}
	}
	seen := map[pyroscope.ProfileType]bool{}
	var out []pyroscope.ProfileType
	for _, name := range names {
		types, ok := profileTypes[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown profile type %q", name)
		}
		for _, t := range types {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// Stop uploads the last profile. Safe to call more than once.
func (p *Profiler) Stop() error {
	var err error
	p.once.Do(func() {
		if p.session != nil {
			err = p.session.Stop()
		}
	})
	return err
}
