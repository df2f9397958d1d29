package testutil

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
)

// MockChainBackend is an in-memory provider.ChainBackend. Pushed logs are returned by
// FilterLogs and delivered to live log subscriptions.
type MockChainBackend struct {
	mu          sync.Mutex
	logs        []types.Log
	receipts    map[common.Hash]*types.Receipt
	blockNumber uint64
	subs        []*mockLogSubscription

	// SupportsSubscriptions mimics a websocket transport. When false SubscribeFilterLogs
	// fails the way an http client does.
	SupportsSubscriptions bool
}

func NewMockChainBackend() *MockChainBackend {
	return &MockChainBackend{
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

var _ provider.ChainBackend = (*MockChainBackend)(nil)

type mockLogSubscription struct {
	query ethereum.FilterQuery
	ch    chan<- types.Log
	errCh chan error
	quit  chan struct{}
	once  sync.Once
}

func (s *mockLogSubscription) Err() <-chan error {
	return s.errCh
}

func (s *mockLogSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.quit)
		close(s.errCh)
	})
}

func (b *MockChainBackend) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []types.Log
	for _, l := range b.logs {
		if matchesQuery(q, l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (b *MockChainBackend) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.SupportsSubscriptions {
		return nil, rpc.ErrNotificationsUnsupported
	}
	sub := &mockLogSubscription{
		query: q,
		ch:    ch,
		errCh: make(chan error, 1),
		quit:  make(chan struct{}),
	}
	b.subs = append(b.subs, sub)
	return sub, nil
}

func (b *MockChainBackend) BlockNumber(ctx context.Context) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blockNumber, nil
}

func (b *MockChainBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.receipts[hash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

// CodeAt reports every account as empty; no contract is deployed on the fake chain.
func (b *MockChainBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return nil, nil
}

// SetReceipt makes TransactionReceipt return receipt for hash.
func (b *MockChainBackend) SetReceipt(hash common.Hash, receipt *types.Receipt) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receipts[hash] = receipt
}

// SetBlockNumber moves the chain head without adding logs.
func (b *MockChainBackend) SetBlockNumber(n uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blockNumber = n
}

// PushLog records l, advancing the head to its block, and hands it to every matching
// live subscription.
func (b *MockChainBackend) PushLog(l types.Log) {
	b.mu.Lock()
	b.logs = append(b.logs, l)
	if l.BlockNumber > b.blockNumber {
		b.blockNumber = l.BlockNumber
	}
	subs := append([]*mockLogSubscription(nil), b.subs...)
	b.mu.Unlock()

	for _, s := range subs {
		if !matchesQuery(s.query, l) {
			continue
		}
		select {
		case s.ch <- l:
		case <-s.quit:
		}
	}
}

// ActiveSubscriptions counts log subscriptions that have not been unsubscribed.
func (b *MockChainBackend) ActiveSubscriptions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.subs {
		select {
		case <-s.quit:
		default:
			n++
		}
	}
	return n
}

func matchesQuery(q ethereum.FilterQuery, l types.Log) bool {
	if q.FromBlock != nil && q.FromBlock.Sign() >= 0 && new(big.Int).SetUint64(l.BlockNumber).Cmp(q.FromBlock) < 0 {
		return false
	}
	if q.ToBlock != nil && q.ToBlock.Sign() >= 0 && new(big.Int).SetUint64(l.BlockNumber).Cmp(q.ToBlock) > 0 {
		return false
	}
	if len(q.Addresses) > 0 {
		found := false
		for _, a := range q.Addresses {
			if a == l.Address {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for i, options := range q.Topics {
		if len(options) == 0 {
			continue
		}
		if i >= len(l.Topics) {
			return false
		}
		found := false
		for _, t := range options {
			if t == l.Topics[i] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
