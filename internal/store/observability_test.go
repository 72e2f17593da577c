package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int
	timings  int
}

func (m *recordingMetrics) IncrementCounter(metric string, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int)
	}
	m.counters[metric+"/"+labels["op"]+"/"+labels["status"]]++
}

func (m *recordingMetrics) RecordDuration(metric string, d time.Duration, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings++
}

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.log(msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log(msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log(msg) }

func TestMetrics_RecordsOperations(t *testing.T) {
	m := &recordingMetrics{}
	s := createTestStore(t, WithMetrics(m))
	ctx := context.Background()

	_, err := s.Insert(ctx, demoDraft())
	require.NoError(t, err)

	bad := demoDraft()
	bad.Quantity = nil
	_, err = s.Insert(ctx, bad)
	require.Error(t, err)

	_, err = s.QueryAll(ctx)
	require.NoError(t, err)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, 1, m.counters[MetricOperations+"/open/ok"])
	assert.Equal(t, 1, m.counters[MetricOperations+"/insert/ok"])
	assert.Equal(t, 1, m.counters[MetricOperations+"/insert/error"])
	assert.Equal(t, 1, m.counters[MetricOperations+"/query_all/ok"])
	assert.Equal(t, 4, m.timings)
}

func TestLogger_CreatesTableOnce(t *testing.T) {
	path := t.TempDir() + "/test.db"
	l := &recordingLogger{}

	for i := 0; i < 2; i++ {
		s, err := Open(path, CurrentSchemaVersion, WithLogger(l))
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	created := 0
	for _, msg := range l.msgs {
		if msg == "books table created" {
			created++
		}
	}
	assert.Equal(t, 1, created)
}
