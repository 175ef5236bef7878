package core

import (
	"context"
	"encoding/json"
	"sync"
)

type testSession struct {
	mu       sync.Mutex
	signedIn bool
	token    string
	tokenErr error
}

func (s *testSession) IsSignedIn(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

func (s *testSession) AccessToken(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokenErr != nil {
		return "", s.tokenErr
	}
	return s.token, nil
}

func signedInSession() *testSession {
	return &testSession{signedIn: true, token: "access-token"}
}

type transportFunc func(ctx context.Context, req GraphQLRequest) (GraphQLResponse, error)

type testTransport struct {
	mu          sync.Mutex
	queryCalls  int
	mutateCalls int
	lastRequest GraphQLRequest
	queryFn     transportFunc
	mutateFn    transportFunc
}

func (t *testTransport) Query(ctx context.Context, req GraphQLRequest) (GraphQLResponse, error) {
	t.mu.Lock()
	t.queryCalls++
	t.lastRequest = req
	fn := t.queryFn
	t.mu.Unlock()
	if fn == nil {
		return GraphQLResponse{}, nil
	}
	return fn(ctx, req)
}

func (t *testTransport) Mutate(ctx context.Context, req GraphQLRequest) (GraphQLResponse, error) {
	t.mu.Lock()
	t.mutateCalls++
	t.lastRequest = req
	fn := t.mutateFn
	t.mu.Unlock()
	if fn == nil {
		return GraphQLResponse{}, nil
	}
	return fn(ctx, req)
}

func (t *testTransport) calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queryCalls + t.mutateCalls
}

func (t *testTransport) last() GraphQLRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRequest
}

func respondWithData(raw string) transportFunc {
	return func(context.Context, GraphQLRequest) (GraphQLResponse, error) {
		return GraphQLResponse{Data: json.RawMessage(raw)}, nil
	}
}

func respondWithErrors(gqlErrs ...GraphQLError) transportFunc {
	return func(context.Context, GraphQLRequest) (GraphQLResponse, error) {
		return GraphQLResponse{Errors: gqlErrs}, nil
	}
}

func respondWithFailure(err error) transportFunc {
	return func(context.Context, GraphQLRequest) (GraphQLResponse, error) {
		return GraphQLResponse{}, err
	}
}

type capturedCounter struct {
	name  string
	value int64
	tags  map[string]string
}

type capturedHistogram struct {
	name  string
	value float64
	tags  map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms []capturedHistogram
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, value: value, tags: cloneTags(tags)})
}

func (m *captureMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms = append(m.histograms, capturedHistogram{name: name, value: value, tags: cloneTags(tags)})
}

func hasCounter(counters []capturedCounter, name string, status string) bool {
	for _, counter := range counters {
		if counter.name == name && counter.tags["status"] == status {
			return true
		}
	}
	return false
}

func hasHistogram(histograms []capturedHistogram, name string, status string) bool {
	for _, histogram := range histograms {
		if histogram.name == name && histogram.tags["status"] == status {
			return true
		}
	}
	return false
}

type capturedLog struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu       *sync.Mutex
	records  *[]capturedLog
	defaults map[string]any
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records, defaults: map[string]any{}}
}

func (l *captureLogger) WithFields(fields map[string]any) Logger {
	merged := cloneFields(l.defaults)
	for key, value := range fields {
		merged[key] = value
	}
	return &captureLogger{mu: l.mu, records: l.records, defaults: merged}
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *captureLogger) WithContext(context.Context) Logger {
	return &captureLogger{mu: l.mu, records: l.records, defaults: cloneFields(l.defaults)}
}

func (l *captureLogger) record(level string, msg string, args ...any) {
	fields := cloneFields(l.defaults)
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) snapshot() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := *l.records
	out := make([]capturedLog, len(items))
	copy(out, items)
	return out
}

func hasLog(records []capturedLog, level string, msg string, eventType string) bool {
	for _, record := range records {
		if record.level != level || record.msg != msg {
			continue
		}
		if eventType == "" || record.fields["event_type"] == eventType {
			return true
		}
	}
	return false
}

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}
