package provider

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/time/rate"
)

// watch polls the wallet and emits an event for every observed difference from the
// previous poll. A plain JSON-RPC endpoint has no push channel for these changes.
func (p *RPCProvider) watch(ctx context.Context, lastChainId string, lastAccounts []common.Address) {
	limiter := rate.NewLimiter(rate.Every(p.pollInterval), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		chainId, accounts, err := p.snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Sugar().Warnw("Failed to poll wallet state", "url", p.url, "error", err)
			continue
		}

		if chainId != lastChainId {
			p.logger.Sugar().Infow("Wallet chain changed", "from", lastChainId, "to", chainId)
			if err := p.dispatcher.Emit(ctx, Event{Name: EventChainChanged, ChainId: chainId}); err != nil {
				return
			}
			lastChainId = chainId
		}

		if !sameAccounts(accounts, lastAccounts) {
			p.logger.Sugar().Infow("Wallet accounts changed", "count", len(accounts))
			if err := p.dispatcher.Emit(ctx, Event{Name: EventAccountsChanged, Accounts: accounts}); err != nil {
				return
			}
			lastAccounts = accounts
		}
	}
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
