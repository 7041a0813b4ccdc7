package constants

import "time"

var CacheTTL = struct {
	Dataset time.Duration
}{
	Dataset: 30 * time.Minute, // 원본 데이터셋 본문
}

var DatasetConfig = struct {
	FetchTimeout time.Duration
	MaxBodyBytes int64
	CacheKey     string
}{
	FetchTimeout: 10 * time.Second,
	MaxBodyBytes: 16 << 20,
	CacheKey:     "directory:dataset",
}

var RedisConfig = struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingTimeout  time.Duration
	PoolSize     int
}{
	DialTimeout:  5 * time.Second,
	ReadTimeout:  3 * time.Second,
	WriteTimeout: 3 * time.Second,
	PingTimeout:  5 * time.Second,
	PoolSize:     10,
}

var PhotoConfig = struct {
	BaseURL      string
	FetchTimeout time.Duration
	MaxBytes     int64
	CacheControl string
}{
	BaseURL:      "https://www.govtrack.us/static/legislator-photos",
	FetchTimeout: 5 * time.Second,
	MaxBytes:     2 << 20,
	CacheControl: "public, max-age=86400",
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 3,                // 3회 연속 실패 시 Circuit OPEN
	ResetTimeout:     30 * time.Second, // 기본 재시도 대기 시간 (30초)
}

var ServerConfig = struct {
	ReadHeaderTimeout  time.Duration
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	HealthCacheTimeout time.Duration
	CORSMaxAge         int
}{
	ReadHeaderTimeout:  5 * time.Second,
	RequestTimeout:     30 * time.Second,
	ShutdownTimeout:    10 * time.Second,
	HealthCacheTimeout: time.Second,
	CORSMaxAge:         300,
}

var LiveConfig = struct {
	SendBuffer   int
	WriteTimeout time.Duration
	MaxMessage   int64
}{
	SendBuffer:   16,
	WriteTimeout: 10 * time.Second,
	MaxMessage:   4096,
}

var WatchConfig = struct {
	Debounce time.Duration
}{
	Debounce: 250 * time.Millisecond,
}
