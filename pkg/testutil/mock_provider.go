package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"go.uber.org/zap"
)

// ResponderFunc answers one JSON-RPC method. params are JSON-normalized, the way a wallet receives them.
type ResponderFunc func(params []interface{}) (interface{}, error)

// RequestRecord is one request seen by the MockProvider
type RequestRecord struct {
	Method string
	Params []interface{}
}

// MockProvider implements provider.IWalletProvider for testing.
// Responses are scripted per method and events are delivered synchronously by Emit.
type MockProvider struct {
	mu         sync.Mutex
	responders map[string]ResponderFunc
	requests   []RequestRecord
	started    bool
	baseline   *provider.WalletState
	closed     bool

	url        string
	dispatcher *provider.Dispatcher
	backend    *MockChainBackend
	logger     *zap.Logger
}

var _ provider.IWalletProvider = (*MockProvider)(nil)

func NewMockProvider(logger *zap.Logger) *MockProvider {
	return &MockProvider{
		responders: make(map[string]ResponderFunc),
		url:        "mock://wallet",
		dispatcher: provider.NewDispatcher(logger),
		backend:    NewMockChainBackend(),
		logger:     logger,
	}
}

// On installs fn as the responder for method, replacing any previous one.
func (m *MockProvider) On(method string, fn ResponderFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responders[method] = fn
}

// Respond makes method always return result.
func (m *MockProvider) Respond(method string, result interface{}) {
	m.On(method, func([]interface{}) (interface{}, error) {
		return result, nil
	})
}

// Fail makes method always return a wallet error.
func (m *MockProvider) Fail(method string, code int, message string) {
	m.On(method, func([]interface{}) (interface{}, error) {
		return nil, &provider.ProviderError{Method: method, Code: code, Message: message}
	})
}

func (m *MockProvider) Request(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	normalized, err := normalizeParams(params)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.requests = append(m.requests, RequestRecord{Method: method, Params: normalized})
	fn, ok := m.responders[method]
	m.mu.Unlock()

	if !ok {
		return &provider.ProviderError{
			Method:  method,
			Code:    -32601,
			Message: fmt.Sprintf("the method %s does not exist/is not available", method),
		}
	}

	res, err := fn(normalized)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, result)
}

func (m *MockProvider) Subscribe(name provider.EventName, handler provider.EventHandler) func() {
	return m.dispatcher.Subscribe(name, handler)
}

// Emit delivers event to the current subscribers before returning.
func (m *MockProvider) Emit(event provider.Event) {
	m.dispatcher.Dispatch(event)
}

func (m *MockProvider) SubscriberCount(name provider.EventName) int {
	return m.dispatcher.SubscriberCount(name)
}

func (m *MockProvider) URL() string {
	return m.url
}

func (m *MockProvider) Backend() provider.ChainBackend {
	return m.backend
}

// ChainBackend exposes the concrete fake so tests can push logs and receipts.
func (m *MockProvider) ChainBackend() *MockChainBackend {
	return m.backend
}

func (m *MockProvider) Start(ctx context.Context, baseline *provider.WalletState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	m.baseline = baseline
	return nil
}

// Baseline returns the state Start was given.
func (m *MockProvider) Baseline() *provider.WalletState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseline
}

func (m *MockProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockProvider) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

func (m *MockProvider) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Requests returns every request made so far, in order.
func (m *MockProvider) Requests() []RequestRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RequestRecord(nil), m.requests...)
}

// RequestsFor returns the requests made for one method.
func (m *MockProvider) RequestsFor(method string) []RequestRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []RequestRecord
	for _, r := range m.requests {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func normalizeParams(params []interface{}) ([]interface{}, error) {
	if len(params) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
