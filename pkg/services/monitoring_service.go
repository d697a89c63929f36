package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxLogEntries bounds the in-memory request log.
const maxLogEntries = 10000

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// LogEntry is a single request log line.
type LogEntry struct {
	RequestID    string        `json:"requestId"`
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"statusCode"`
	ResponseTime time.Duration `json:"responseTime"`
}

// FallbackEntry records a remote assistant failure that was answered locally.
type FallbackEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Endpoint  string    `json:"endpoint"`
	Error     string    `json:"error"`
}

// MonitoringService keeps request logs and assistant fallbacks in memory.
type MonitoringService struct {
	mu        sync.RWMutex
	logs      []LogEntry
	fallbacks []FallbackEntry
	location  *time.Location
	now       func() time.Time
}

// NewMonitoringService creates a service reporting buckets in timezone.
// An unknown timezone falls back to UTC.
func NewMonitoringService(timezone string) *MonitoringService {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	return &MonitoringService{
		logs:     make([]LogEntry, 0),
		location: loc,
		now:      time.Now,
	}
}

// LogRequest records a request.
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}
}

// RecordFallback implements FallbackRecorder.
func (s *MonitoringService) RecordFallback(endpoint string, err error) {
	entry := FallbackEntry{Timestamp: s.now(), Endpoint: endpoint}
	if err != nil {
		entry.Error = err.Error()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbacks = append(s.fallbacks, entry)
	if len(s.fallbacks) > maxLogEntries {
		s.fallbacks = s.fallbacks[len(s.fallbacks)-maxLogEntries:]
	}
}

// FallbackCount returns how many fallbacks were recorded for endpoint.
func (s *MonitoringService) FallbackCount(endpoint string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, f := range s.fallbacks {
		if f.Endpoint == endpoint {
			count++
		}
	}
	return count
}

// LoggingMiddleware tags each request with an id and records it once handled.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		// admin and dashboard traffic is not counted
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			RequestID:    requestID,
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: s.now().Sub(start),
		})
	}
}

// DashboardData is the aggregated view served to the monitoring dashboard.
type DashboardData struct {
	RequestsOverTime []map[string]interface{} `json:"requestsOverTime"`
	Endpoints        map[string]int           `json:"endpoints"`
	StatusCodes      []map[string]interface{} `json:"statusCodes"`
	AvgResponseTimes []map[string]interface{} `json:"avgResponseTimes"`
	RecentErrors     []LogEntry               `json:"recentErrors"`
	Fallbacks        map[string]int           `json:"fallbacks"`
	RecentFallbacks  []FallbackEntry          `json:"recentFallbacks"`
}

// GetDashboardData aggregates the last periodHours of logs.
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	if periodHours <= 0 {
		periodHours = 24
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().In(s.location)
	since := now.Add(-time.Duration(periodHours) * time.Hour)

	filtered := make([]LogEntry, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filtered = append(filtered, entry)
		}
	}

	// hourly buckets, oldest first
	requestsOverTime := make([]map[string]interface{}, periodHours)
	bucketIndex := make(map[string]int, periodHours)
	for i := 0; i < periodHours; i++ {
		target := now.Add(-time.Duration(periodHours-1-i) * time.Hour)
		bucketIndex[target.Truncate(time.Hour).Format(time.RFC3339)] = i
		requestsOverTime[i] = map[string]interface{}{"time": target.Format("15:00"), "requests": 0}
	}
	for _, entry := range filtered {
		key := entry.Timestamp.In(s.location).Truncate(time.Hour).Format(time.RFC3339)
		if i, ok := bucketIndex[key]; ok {
			requestsOverTime[i]["requests"] = requestsOverTime[i]["requests"].(int) + 1
		}
	}

	endpoints := make(map[string]int)
	responseTimeSum := make(map[string]time.Duration)
	statusCodes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	for _, entry := range filtered {
		endpoints[entry.Path]++
		responseTimeSum[entry.Path] += entry.ResponseTime
		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			statusCodes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			statusCodes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			statusCodes["5xx Server Error"]++
		}
	}

	statusNames := make([]string, 0, len(statusCodes))
	for name := range statusCodes {
		statusNames = append(statusNames, name)
	}
	sort.Strings(statusNames)
	statusCodesSlice := make([]map[string]interface{}, 0, len(statusNames))
	for _, name := range statusNames {
		statusCodesSlice = append(statusCodesSlice, map[string]interface{}{"name": name, "value": statusCodes[name]})
	}

	paths := make([]string, 0, len(responseTimeSum))
	for path := range responseTimeSum {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	avgResponseTimes := make([]map[string]interface{}, 0, len(paths))
	for _, path := range paths {
		avg := responseTimeSum[path].Milliseconds() / int64(endpoints[path])
		avgResponseTimes = append(avgResponseTimes, map[string]interface{}{"endpoint": path, "responseTime": avg})
	}

	recentErrors := make([]LogEntry, 0)
	for i := len(filtered) - 1; i >= 0 && len(recentErrors) < 10; i-- {
		if filtered[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filtered[i])
		}
	}

	fallbacks := make(map[string]int)
	recentFallbacks := make([]FallbackEntry, 0)
	for i := len(s.fallbacks) - 1; i >= 0; i-- {
		f := s.fallbacks[i]
		if !f.Timestamp.After(since) {
			continue
		}
		fallbacks[f.Endpoint]++
		if len(recentFallbacks) < 10 {
			recentFallbacks = append(recentFallbacks, f)
		}
	}

	return DashboardData{
		RequestsOverTime: requestsOverTime,
		Endpoints:        endpoints,
		StatusCodes:      statusCodesSlice,
		AvgResponseTimes: avgResponseTimes,
		RecentErrors:     recentErrors,
		Fallbacks:        fallbacks,
		RecentFallbacks:  recentFallbacks,
	}
}
