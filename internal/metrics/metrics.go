package metrics

import (
	"sync"
	"time"
)

// Metrics acumula contadores do processo. Seguro para uso concorrente.
type Metrics struct {
	mu                sync.RWMutex
	SessionsStarted   int64
	SessionsCompleted int64
	QuestionsAsked    int64
	AnswersEvaluated  int64
	APICallsTotal     int64
	APICallsSucceeded int64
	FallbacksUsed     int64
	LastUpdateTime    time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersEvaluated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersEvaluated++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if success {
		m.APICallsSucceeded++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFallbacksUsed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbacksUsed++
	m.LastUpdateTime = time.Now()
}

// Snapshot é uma cópia sem lock dos contadores
type Snapshot struct {
	SessionsStarted   int64
	SessionsCompleted int64
	QuestionsAsked    int64
	AnswersEvaluated  int64
	APICallsTotal     int64
	APICallsSucceeded int64
	FallbacksUsed     int64
	LastUpdateTime    time.Time
}

// GetSnapshot devolve uma cópia consistente dos contadores
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:   m.SessionsStarted,
		SessionsCompleted: m.SessionsCompleted,
		QuestionsAsked:    m.QuestionsAsked,
		AnswersEvaluated:  m.AnswersEvaluated,
		APICallsTotal:     m.APICallsTotal,
		APICallsSucceeded: m.APICallsSucceeded,
		FallbacksUsed:     m.FallbacksUsed,
		LastUpdateTime:    m.LastUpdateTime,
	}
}
