// Package session tracks the wallet account and chain of one page load.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/util"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"go.uber.org/zap"
)

const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// Reloader restarts the page.
type Reloader interface {
	Reload(reason string)
}

// BalanceRefresher shows the balance of the active account.
type BalanceRefresher interface {
	Refresh(ctx context.Context, address common.Address)
}

// Session holds the page's view of the wallet. It only changes in response to
// provider events and the connect request.
type Session struct {
	provider provider.IProvider
	display  view.IDisplay
	balance  BalanceRefresher
	reloader Reloader
	logger   *zap.Logger

	mu           sync.RWMutex
	ctx          context.Context
	state        types.Session
	accounts     []common.Address
	unsubscribes []func()
}

func NewSession(
	p provider.IProvider,
	display view.IDisplay,
	balance BalanceRefresher,
	reloader Reloader,
	logger *zap.Logger,
) *Session {
	return &Session{
		provider: p,
		display:  display,
		balance:  balance,
		reloader: reloader,
		logger:   logger,
		ctx:      context.Background(),
	}
}

// Load reads the chain id, subscribes to wallet changes and runs the already
// authorized accounts through HandleAccountsChanged. ctx is the page context and
// scopes the work done by later events.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	var chainId string
	if err := s.provider.Request(ctx, &chainId, "eth_chainId"); err != nil {
		return fmt.Errorf("failed to read chain id: %w", err)
	}
	s.mu.Lock()
	s.state.ChainId = chainId
	s.mu.Unlock()
	s.logger.Sugar().Infow("Wallet chain", "chain_id", chainId)

	s.subscribe(provider.EventChainChanged, func(e provider.Event) {
		s.HandleChainChanged(e.ChainId)
	})

	var accounts []common.Address
	if err := s.provider.Request(ctx, &accounts, "eth_accounts"); err != nil {
		s.logger.Sugar().Errorw("Failed to read accounts", "error", err)
	} else {
		s.HandleAccountsChanged(ctx, accounts)
	}

	s.subscribe(provider.EventAccountsChanged, func(e provider.Event) {
		s.HandleAccountsChanged(s.pageContext(), e.Accounts)
	})
	return nil
}

// Unload drops the session's provider subscriptions.
func (s *Session) Unload() {
	s.mu.Lock()
	unsubscribes := s.unsubscribes
	s.unsubscribes = nil
	s.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

// HandleChainChanged asks for exactly one reload, whatever the new chain is.
func (s *Session) HandleChainChanged(chainId string) {
	s.logger.Sugar().Infow("Chain changed, reloading", "chain_id", chainId)
	s.reloader.Reload(fmt.Sprintf("chainChanged %s", chainId))
}

// HandleAccountsChanged applies a new account list. An empty list always means
// disconnected. A new first account becomes the active one and its balance is shown.
func (s *Session) HandleAccountsChanged(ctx context.Context, accounts []common.Address) {
	s.mu.Lock()
	s.accounts = append([]common.Address(nil), accounts...)

	if len(accounts) == 0 {
		s.state.ActiveAccount = nil
		s.mu.Unlock()

		s.logger.Sugar().Infow("Please connect to MetaMask.")
		s.display.SetText(view.Element_Status, StatusDisconnected)
		s.display.SetText(view.Element_ShowAccount, "")
		s.display.SetText(view.Element_ShowBalance, "")
		return
	}

	first := accounts[0]
	if s.state.ActiveAccount != nil && *s.state.ActiveAccount == first {
		s.mu.Unlock()
		return
	}
	s.state.ActiveAccount = &first
	s.mu.Unlock()

	s.logger.Sugar().Infow("Active account changed", "account", first.Hex())
	s.display.SetText(view.Element_Status, StatusConnected)
	s.display.SetText(view.Element_ShowAccount, first.Hex())
	s.balance.Refresh(ctx, first)
}

// Connect asks the wallet to authorize accounts and applies the answer.
func (s *Session) Connect(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := s.provider.Request(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	s.logger.Sugar().Infow("Accounts authorized", "count", len(accounts))

	s.HandleAccountsChanged(ctx, accounts)
	if len(accounts) > 0 {
		s.display.SetText(view.Element_Status, fmt.Sprintf("%s: %s", StatusConnected, joinAddresses(accounts)))
	}
	return accounts, nil
}

// ActiveAccount returns the tracked account, if any.
func (s *Session) ActiveAccount() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveAccount == nil {
		return common.Address{}, false
	}
	return *s.state.ActiveAccount, true
}

// Accounts returns the full list from the last accounts update.
func (s *Session) Accounts() []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]common.Address(nil), s.accounts...)
}

// WalletState is the chain and account list the session last applied.
func (s *Session) WalletState() provider.WalletState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return provider.WalletState{
		ChainId:  s.state.ChainId,
		Accounts: append([]common.Address(nil), s.accounts...),
	}
}

func (s *Session) Snapshot() types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := types.Session{ChainId: s.state.ChainId}
	if s.state.ActiveAccount != nil {
		account := *s.state.ActiveAccount
		out.ActiveAccount = &account
	}
	return out
}

func (s *Session) subscribe(name provider.EventName, handler provider.EventHandler) {
	unsubscribe := s.provider.Subscribe(name, handler)
	s.mu.Lock()
	s.unsubscribes = append(s.unsubscribes, unsubscribe)
	s.mu.Unlock()
}

func (s *Session) pageContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

func joinAddresses(accounts []common.Address) string {
	return strings.Join(util.Map(accounts, func(a common.Address, _ uint64) string {
		return a.Hex()
	}), ", ")
}
