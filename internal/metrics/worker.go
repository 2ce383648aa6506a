package metrics

import "time"

// JobCompleted records a successful job completion.
func JobCompleted(jobType string, duration time.Duration) {
	JobsTotal.WithLabelValues(jobType, "completed").Inc()
	JobDuration.WithLabelValues(jobType).Observe(duration.Seconds())
}

// JobFailed records a job failure.
func JobFailed(jobType string, duration time.Duration) {
	JobsTotal.WithLabelValues(jobType, "failed").Inc()
	JobDuration.WithLabelValues(jobType).Observe(duration.Seconds())
}

// JobRetried records a job retry attempt.
func JobRetried(jobType string) {
	JobRetriesTotal.WithLabelValues(jobType).Inc()
}

// AIUsage records one AI call's token and cost accounting.
func AIUsage(inputTokens, outputTokens, costCents int) {
	AITokensTotal.WithLabelValues("input").Add(float64(inputTokens))
	AITokensTotal.WithLabelValues("output").Add(float64(outputTokens))
	AICostCentsTotal.Add(float64(costCents))
}
