package ports

import "time"

// MetricsRecorder accumulates serving metrics. Increments are monotonic and
// must be safe under concurrent calls from many simultaneous requests.
type MetricsRecorder interface {
	RecordRequest(method, endpoint string, status int, duration time.Duration)
	RecordPrediction()
	RecordPredictionError()
	SetModelInfo(version string)
}
