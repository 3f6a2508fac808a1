package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesCheckedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_messages_checked_total",
	Help: "The total number of messages run through the moderation pipeline",
})

var keywordMatchesCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_keyword_matches_total",
	Help: "The total number of messages that matched a configured keyword",
})

var messagesDeletedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_messages_deleted_total",
	Help: "The total number of matched messages deleted",
})

var deleteFailuresCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_delete_failures_total",
	Help: "The total number of failed message deletions",
})

var adminExemptionsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_admin_exemptions_total",
	Help: "The total number of matches exempted by sender privilege",
})

var enforcementsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_enforcements_total",
	Help: "The total number of mutes applied by the moderation pipeline",
})

var enforcementFailuresCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "keywordbot_enforcement_failures_total",
	Help: "The total number of mute attempts that failed",
})
