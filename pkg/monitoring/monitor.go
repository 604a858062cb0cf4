package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	VideoCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_video_completions_total",
			Help: "Onboarding videos marked completed",
		},
		[]string{"video"},
	)

	PlaybackErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_playback_errors_total",
			Help: "Playback failures reported by the onboarding player",
		},
		[]string{"video"},
	)

	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_quiz_submissions_total",
			Help: "Quiz submissions by result",
		},
		[]string{"result"},
	)

	Commitments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_commitments_total",
			Help: "Commitment completions by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(VideoCompletions)
		prometheus.MustRegister(PlaybackErrors)
		prometheus.MustRegister(QuizSubmissions)
		prometheus.MustRegister(Commitments)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
