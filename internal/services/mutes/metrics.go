package mutes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var mutesAppliedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_mutes_applied_total",
	Help: "The total number of mutes placed on users",
})

var mutesExpiredCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_mutes_expired_total",
	Help: "The total number of mutes released by expiry sweeps",
})

var manualUnmutesCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_manual_unmutes_total",
	Help: "The total number of mutes lifted by an admin command",
})
