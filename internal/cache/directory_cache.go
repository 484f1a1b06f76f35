package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DirectoryDataSource is the interface for loading the mentor directory
// from storage
type DirectoryDataSource interface {
	ListMentors(ctx context.Context) ([]*models.User, map[string]*models.Profile, error)
}

const (
	entryKeyPrefix   = "directory:mentor:"
	allEntriesKey    = "directory:all"
	cacheCheckPeriod = 10 * time.Second
	maxRetries       = 3
	initialRetryWait = 2 * time.Second
)

// DirectoryEntry is a mentor account paired with its profile, as shown
// in the mentee-facing directory. Profile is nil for mentors who have
// not completed onboarding yet.
type DirectoryEntry struct {
	UserID  string          `json:"userId"`
	Email   string          `json:"email"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// DirectoryCacheInterface defines the mentor directory cache operations
type DirectoryCacheInterface interface {
	Initialize() error
	IsReady() bool
	Get() ([]*DirectoryEntry, error)
	GetByID(mentorID string) (*DirectoryEntry, error)
	ForceRefresh() ([]*DirectoryEntry, error)
	Clear()
}

// DirectoryCache keeps the mentor directory in memory so mentee browsing
// never hits the database on the hot path
type DirectoryCache struct {
	cache      *gocache.Cache
	dataSource DirectoryDataSource
	mu         sync.RWMutex
	refreshing bool
	ready      bool
	ttl        time.Duration
}

// NewDirectoryCache creates a directory cache with the given TTL
func NewDirectoryCache(dataSource DirectoryDataSource, ttlSeconds int) *DirectoryCache {
	return &DirectoryCache{
		cache:      gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        time.Duration(ttlSeconds) * time.Second,
	}
}

// Initialize performs the initial synchronous population, then starts
// the background refresh scheduler. Call during startup before serving.
func (dc *DirectoryCache) Initialize() error {
	logger.Info("Initializing mentor directory cache...")
	startTime := time.Now()

	if err := dc.refreshWithRetry(); err != nil {
		logger.Error("Failed to initialize mentor directory cache", zap.Error(err))
		return err
	}

	dc.mu.Lock()
	dc.ready = true
	dc.mu.Unlock()

	logger.Info("Mentor directory cache initialized",
		zap.Duration("duration", time.Since(startTime)))

	go dc.schedulePeriodicRefresh()

	return nil
}

// IsReady returns true once the cache has been populated
func (dc *DirectoryCache) IsReady() bool {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.ready
}

// Get returns the full directory from cache without blocking. Never
// triggers a database fetch.
func (dc *DirectoryCache) Get() ([]*DirectoryEntry, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	idsData, found := dc.cache.Get(allEntriesKey)
	if !found {
		metrics.CacheMisses.WithLabelValues("directory_all").Inc()
		logger.Warn("Directory list not in cache (expired), returning empty")
		return []*DirectoryEntry{}, nil
	}

	ids, ok := idsData.([]string)
	if !ok {
		logger.Error("Invalid cache data type for directory list")
		return []*DirectoryEntry{}, nil
	}

	metrics.CacheHits.WithLabelValues("directory_all").Inc()

	entries := make([]*DirectoryEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := dc.GetByID(id)
		if err != nil {
			logger.Debug("Mentor missing from directory cache", zap.String("mentor_id", id))
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetByID returns a single directory entry from cache
func (dc *DirectoryCache) GetByID(mentorID string) (*DirectoryEntry, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	data, found := dc.cache.Get(entryKeyPrefix + mentorID)
	if !found {
		metrics.CacheMisses.WithLabelValues("directory_by_id").Inc()
		return nil, fmt.Errorf("mentor not found")
	}

	metrics.CacheHits.WithLabelValues("directory_by_id").Inc()

	entry, ok := data.(*DirectoryEntry)
	if !ok {
		logger.Error("Invalid cache data type", zap.String("mentor_id", mentorID))
		dc.cache.Delete(entryKeyPrefix + mentorID)
		return nil, fmt.Errorf("invalid cache data")
	}

	return entry, nil
}

// ForceRefresh triggers a background refresh and returns the current
// cached data immediately
func (dc *DirectoryCache) ForceRefresh() ([]*DirectoryEntry, error) {
	go func() {
		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Directory background refresh failed", zap.Error(err))
		}
	}()

	return dc.Get()
}

func (dc *DirectoryCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(dc.ttl)
	defer ticker.Stop()

	for range ticker.C {
		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Scheduled directory refresh failed", zap.Error(err))
		}
	}
}

func (dc *DirectoryCache) refreshInBackground() error {
	dc.mu.Lock()
	if dc.refreshing {
		dc.mu.Unlock()
		logger.Debug("Directory refresh already in progress, skipping")
		return nil
	}
	dc.refreshing = true
	dc.mu.Unlock()

	defer func() {
		dc.mu.Lock()
		dc.refreshing = false
		dc.mu.Unlock()
	}()

	mentors, profiles, err := dc.dataSource.ListMentors(context.Background())
	if err != nil {
		return err
	}

	dc.populateCache(mentors, profiles)
	return nil
}

func (dc *DirectoryCache) refreshWithRetry() error {
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			waitTime := initialRetryWait * time.Duration(1<<uint(attempt-1))
			logger.Info("Retrying directory cache refresh",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait_time", waitTime))
			time.Sleep(waitTime)
		}

		mentors, profiles, fetchErr := dc.dataSource.ListMentors(context.Background())
		if fetchErr != nil {
			err = fetchErr
			logger.Error("Directory cache refresh attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		dc.populateCache(mentors, profiles)
		return nil
	}

	return fmt.Errorf("failed to refresh directory cache after %d attempts: %w", maxRetries, err)
}

// populateCache stores each mentor under its own key with no expiration.
// The ID list carries the TTL and controls expiry for the whole set.
func (dc *DirectoryCache) populateCache(mentors []*models.User, profiles map[string]*models.Profile) {
	ids := make([]string, 0, len(mentors))

	for _, mentor := range mentors {
		entry := &DirectoryEntry{
			UserID:  mentor.ID,
			Email:   mentor.Email,
			Profile: profiles[mentor.ID],
		}
		dc.cache.Set(entryKeyPrefix+mentor.ID, entry, gocache.NoExpiration)
		ids = append(ids, mentor.ID)
	}

	dc.cache.Set(allEntriesKey, ids, dc.ttl)

	metrics.CacheSize.WithLabelValues("mentor_directory").Set(float64(len(mentors)))
	logger.Info("Mentor directory cache populated", zap.Int("count", len(mentors)))
}

// Clear flushes the entire cache
func (dc *DirectoryCache) Clear() {
	dc.cache.Flush()
	logger.Info("Mentor directory cache cleared")
}
