package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/mentorlink/mentorlink-api/config"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"go.uber.org/zap"
)

const defaultUploadIntervalSeconds = 15

// allSampleTypes is what the profiler collects when no explicit
// sample-type filter is configured
var allSampleTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

// sampleTypeAliases maps each configurable alias to the pyroscope
// profile types it enables. "mutex" and "block" each carry a
// count/duration pair.
var sampleTypeAliases = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// InitProfiler starts continuous profiling against the configured
// pyroscope endpoint. The returned function stops the profiler and is
// a no-op when profiling is disabled.
func InitProfiler(cfg config.ProfilingConfig, serviceName, namespace, version, instanceID, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Profiling disabled, skipping pyroscope setup")
		return func() {}, nil
	}

	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}
	if cfg.UploadIntervalSeconds <= 0 {
		cfg.UploadIntervalSeconds = defaultUploadIntervalSeconds
	}

	sampleTypes, err := resolveSampleTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	appName := pyroscopeAppName(cfg.AppName, serviceName, namespace, environment, version, instanceID)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   cfg.Endpoint,
		UploadRate:      time.Duration(cfg.UploadIntervalSeconds) * time.Second,
		ProfileTypes:    sampleTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Profiling started",
		zap.String("application_name", appName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("sample_types", cfg.SampleTypes),
		zap.Int("upload_interval_seconds", cfg.UploadIntervalSeconds))

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// resolveSampleTypes parses the comma-separated sample-type list from
// configuration. An empty or all-whitespace list enables everything.
func resolveSampleTypes(raw string) ([]pyroscope.ProfileType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return allSampleTypes, nil
	}

	enabled := make(map[pyroscope.ProfileType]bool, len(allSampleTypes))
	resolved := make([]pyroscope.ProfileType, 0, len(allSampleTypes))

	for _, item := range strings.Split(raw, ",") {
		alias := strings.ToLower(strings.TrimSpace(item))
		types, ok := sampleTypeAliases[alias]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", alias)
		}

		for _, t := range types {
			if enabled[t] {
				continue
			}
			enabled[t] = true
			resolved = append(resolved, t)
		}
	}

	return resolved, nil
}

// pyroscopeAppName renders the application name with its identity
// labels in pyroscope's name{k=v,...} form
func pyroscopeAppName(appName, serviceName, namespace, environment, version, instanceID string) string {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		appName = "mentorlink-api"
	}

	return fmt.Sprintf("%s{service_name=%s,namespace=%s,environment=%s,service_version=%s,instance=%s}",
		appName, serviceName, namespace, environment, version, instanceID)
}
