package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	accessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xbb_access_denied_total",
		Help: "Number of denied access checks by operation and error kind.",
	}, []string{"op", "kind"})

	pushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xbb_push_total",
		Help: "Number of successful pushes by entity and outcome.",
	}, []string{"entity", "outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xbb_http_requests_total",
		Help: "Number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)

// AccessDenied 记录一次权限校验失败
func AccessDenied(op, kind string) {
	accessDenied.WithLabelValues(op, kind).Inc()
}

// Pushed 记录一次成功的 push
func Pushed(entity, outcome string) {
	pushes.WithLabelValues(entity, outcome).Inc()
}

// HTTPRequest 记录一次 HTTP 请求
func HTTPRequest(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
