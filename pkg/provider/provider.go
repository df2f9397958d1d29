// Package provider wraps the wallet's JSON-RPC endpoint behind the request/subscribe surface
// an injected EIP-1193 provider exposes to a page.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

type EventName string

const (
	EventChainChanged    EventName = "chainChanged"
	EventAccountsChanged EventName = "accountsChanged"
)

// Event is a change notification pushed by the wallet.
type Event struct {
	Name     EventName
	ChainId  string
	Accounts []common.Address
}

type EventHandler func(Event)

// WalletState is the chain and account list a change is measured against.
type WalletState struct {
	ChainId  string
	Accounts []common.Address
}

// IProvider is the request/response and subscription surface every component talks to.
type IProvider interface {
	// Request performs a single JSON-RPC call and decodes the result into result.
	Request(ctx context.Context, result interface{}, method string, params ...interface{}) error

	// Subscribe registers handler for a provider event and returns a function removing it.
	Subscribe(name EventName, handler EventHandler) (unsubscribe func())
}

// ChainBackend is the read side of the chain reached through the wallet's connection.
type ChainBackend interface {
	bind.ContractFilterer
	bind.DeployBackend
	ethereum.BlockNumberReader
}

// IWalletProvider is a detected provider owned by one page load.
type IWalletProvider interface {
	IProvider

	URL() string
	Backend() ChainBackend

	// Start begins emitting change events for every difference from baseline. A nil
	// baseline is read from the wallet.
	Start(ctx context.Context, baseline *WalletState) error

	// Close stops the event watcher and releases the connection. Safe to call more than once.
	Close() error
}

type Config struct {
	// URLs are candidate endpoints in order of preference.
	URLs          []string
	PollInterval  time.Duration
	DetectTimeout time.Duration
}

const defaultDetectTimeout = 5 * time.Second

// RPCProvider implements IWalletProvider on top of a go-ethereum rpc client.
type RPCProvider struct {
	client     *rpc.Client
	backend    *ethclient.Client
	url        string
	logger     *zap.Logger
	dispatcher *Dispatcher

	pollInterval time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// compile-time check
var _ IWalletProvider = (*RPCProvider)(nil)

// DetectProvider looks for a wallet at the configured urls, once, in order. It returns
// types.ErrProviderNotFound when none of them answers eth_chainId.
func DetectProvider(ctx context.Context, cfg *Config, logger *zap.Logger) (*RPCProvider, error) {
	if cfg == nil || len(cfg.URLs) == 0 {
		return nil, types.ErrProviderNotFound
	}

	for i, url := range cfg.URLs {
		p, err := dialProvider(ctx, url, cfg, logger)
		if err != nil {
			logger.Sugar().Debugw("No wallet provider at url", "url", url, "error", err)
			continue
		}
		if i != 0 {
			logger.Sugar().Errorw("Do you have multiple wallets installed?",
				"expected", cfg.URLs[0],
				"detected", url,
			)
		}
		return p, nil
	}
	return nil, types.ErrProviderNotFound
}

func dialProvider(ctx context.Context, url string, cfg *Config, logger *zap.Logger) (*RPCProvider, error) {
	timeout := cfg.DetectTimeout
	if timeout <= 0 {
		timeout = defaultDetectTimeout
	}
	detectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := rpc.DialContext(detectCtx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	var chainId string
	if err := client.CallContext(detectCtx, &chainId, "eth_chainId"); err != nil {
		client.Close()
		return nil, fmt.Errorf("provider at %s did not answer eth_chainId: %w", url, err)
	}

	logger.Sugar().Infow("Detected wallet provider", "url", url, "chain_id", chainId)
	return NewRPCProvider(client, url, cfg.PollInterval, logger), nil
}

// NewRPCProvider wraps an already connected client.
func NewRPCProvider(client *rpc.Client, url string, pollInterval time.Duration, logger *zap.Logger) *RPCProvider {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &RPCProvider{
		client:       client,
		backend:      ethclient.NewClient(client),
		url:          url,
		logger:       logger,
		dispatcher:   NewDispatcher(logger),
		pollInterval: pollInterval,
	}
}

func (p *RPCProvider) URL() string {
	return p.url
}

func (p *RPCProvider) Backend() ChainBackend {
	return p.backend
}

// Request implements IProvider. JSON-RPC errors returned by the wallet come back as *ProviderError.
func (p *RPCProvider) Request(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	clickId := types.ClickIdFromContext(ctx)
	p.logger.Debug("Provider request",
		zap.String("method", method),
		zap.String("url", p.url),
		zap.String("clickId", clickId),
	)

	if err := p.client.CallContext(ctx, result, method, params...); err != nil {
		p.logger.Sugar().Debugw("Provider request failed", "method", method, "clickId", clickId, "error", err)
		return wrapProviderError(method, err)
	}
	return nil
}

func (p *RPCProvider) Subscribe(name EventName, handler EventHandler) func() {
	return p.dispatcher.Subscribe(name, handler)
}

// Start polls for changes from baseline, emitting chainChanged and accountsChanged in
// the order they are observed. Passing the state the page was built from means a change
// landing between that read and Start is still reported.
func (p *RPCProvider) Start(ctx context.Context, baseline *WalletState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return errors.New("provider watcher already started")
	}

	if baseline == nil {
		chainId, accounts, err := p.snapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to read initial wallet state: %w", err)
		}
		baseline = &WalletState{ChainId: chainId, Accounts: accounts}
	}
	chainId := baseline.ChainId
	accounts := append([]common.Address(nil), baseline.Accounts...)

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		p.dispatcher.ListenToChannel(watchCtx)
	}()
	go func() {
		defer p.wg.Done()
		p.watch(watchCtx, chainId, accounts)
	}()
	return nil
}

func (p *RPCProvider) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		cancel := p.cancel
		p.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		p.wg.Wait()
		p.client.Close()
		p.logger.Sugar().Debugw("Provider closed", "url", p.url)
	})
	return nil
}

func (p *RPCProvider) snapshot(ctx context.Context) (string, []common.Address, error) {
	var chainId string
	if err := p.Request(ctx, &chainId, "eth_chainId"); err != nil {
		return "", nil, err
	}
	var accounts []common.Address
	if err := p.Request(ctx, &accounts, "eth_accounts"); err != nil {
		return "", nil, err
	}
	return chainId, accounts, nil
}
