// Package app owns the page lifecycle: it detects the wallet, builds the page's
// components, binds them to the buttons and rebuilds everything when a reload is asked for.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/simple-dapp/simple-dapp-go/pkg/balance"
	"github.com/simple-dapp/simple-dapp-go/pkg/config"
	"github.com/simple-dapp/simple-dapp-go/pkg/contractCaller/caller"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/session"
	"github.com/simple-dapp/simple-dapp-go/pkg/signer"
	"github.com/simple-dapp/simple-dapp-go/pkg/transactionSigner"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"go.uber.org/zap"
)

// ProviderDetector finds the wallet for a new page load.
type ProviderDetector func(ctx context.Context) (provider.IWalletProvider, error)

type App struct {
	config  *config.DappConfig
	detect  ProviderDetector
	display *view.Display
	binder  *view.Binder
	journal journal.IEventJournal
	logger  *zap.Logger

	mu      sync.Mutex
	page    *page
	loads   int
	pending []string
	signal  chan struct{}
}

// page is everything built for one load. It is discarded on reload.
type page struct {
	ctx    context.Context
	cancel context.CancelFunc
	config *config.DappConfig
	logger *zap.Logger

	display  *view.PageDisplay
	provider provider.IWalletProvider
	session  *session.Session
	balance  *balance.Reader
	signer   *signer.Signer
	txSigner *transactionSigner.WalletTransactionSigner
	gateway  *caller.ContractCaller
}

var _ session.Reloader = (*App)(nil)

// NewApp wires an App. eventJournal may be nil, in which case events are only displayed.
func NewApp(
	cfg *config.DappConfig,
	detect ProviderDetector,
	display *view.Display,
	binder *view.Binder,
	eventJournal journal.IEventJournal,
	logger *zap.Logger,
) *App {
	return &App{
		config:  cfg,
		detect:  detect,
		display: display,
		binder:  binder,
		journal: eventJournal,
		logger:  logger,
		signal:  make(chan struct{}, 1),
	}
}

// Run loads the page and serves reload requests until ctx is done. A page that cannot
// find a wallet is fatal: Run returns types.ErrProviderNotFound without binding any handler.
func (a *App) Run(ctx context.Context) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	defer a.unload()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.signal:
		}

		for {
			reason, ok := a.nextReload()
			if !ok {
				break
			}
			a.logger.Sugar().Infow("Reloading page", "reason", reason)
			a.unload()
			if err := a.load(ctx); err != nil {
				return err
			}
		}
	}
}

// Reload queues a full page reload. Every call results in exactly one reload.
func (a *App) Reload(reason string) {
	a.mu.Lock()
	a.pending = append(a.pending, reason)
	a.mu.Unlock()

	select {
	case a.signal <- struct{}{}:
	default:
	}
}

// Loads counts completed page loads.
func (a *App) Loads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loads
}

// Session returns the wallet state of the current page.
func (a *App) Session() (types.Session, bool) {
	a.mu.Lock()
	pg := a.page
	a.mu.Unlock()
	if pg == nil {
		return types.Session{}, false
	}
	return pg.session.Snapshot(), true
}

func (a *App) nextReload() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pending) == 0 {
		return "", false
	}
	reason := a.pending[0]
	a.pending = a.pending[1:]
	return reason, true
}

func (a *App) load(ctx context.Context) error {
	a.display.Reset()

	pageCtx, cancel := context.WithCancel(ctx)
	p, err := a.detect(pageCtx)
	if err != nil {
		cancel()
		if errors.Is(err, types.ErrProviderNotFound) {
			a.logger.Sugar().Errorw("Please install MetaMask!")
		}
		return err
	}

	pg := &page{
		ctx:      pageCtx,
		cancel:   cancel,
		config:   a.config,
		logger:   a.logger,
		display:  a.display.Page(),
		provider: p,
	}
	pg.balance = balance.NewReader(p, pg.display, a.logger)
	pg.session = session.NewSession(p, pg.display, pg.balance, a, a.logger)

	if err := pg.session.Load(pageCtx); err != nil {
		pg.close()
		return fmt.Errorf("failed to load session: %w", err)
	}
	a.checkChain(pg.session.Snapshot().ChainId)

	baseline := pg.session.WalletState()
	if err := p.Start(pageCtx, &baseline); err != nil {
		pg.close()
		return fmt.Errorf("failed to start provider watcher: %w", err)
	}

	pg.signer = signer.NewSigner(p, pg.display, pg.session, a.logger)
	pg.txSigner = transactionSigner.NewWalletTransactionSigner(p, pg.session, &transactionSigner.SignerConfig{
		WaitForReceipt: a.config.WaitForReceipt,
	}, a.logger)
	pg.gateway = caller.NewContractCaller(p.Backend(), pg.txSigner, a.journal, &caller.ContractCallerConfig{
		LockAddress:     a.config.GetLockContractAddress(),
		LogPollInterval: a.config.PollInterval,
	}, a.logger)

	a.binder.Bind(pageCtx, pg.handlers())

	a.mu.Lock()
	a.page = pg
	a.loads++
	loads := a.loads
	a.mu.Unlock()

	a.logger.Sugar().Infow("Page loaded", "provider", p.URL(), "load", loads)
	return nil
}

func (a *App) unload() {
	a.mu.Lock()
	pg := a.page
	a.page = nil
	a.mu.Unlock()
	if pg == nil {
		return
	}

	a.binder.Unbind()
	pg.close()
}

// checkChain warns when the wallet is not on the configured chain. A zero ChainID accepts any chain.
func (a *App) checkChain(chainIdHex string) {
	if a.config.ChainID == 0 {
		return
	}
	chainId, err := hexutil.DecodeUint64(chainIdHex)
	if err != nil {
		a.logger.Sugar().Warnw("Wallet returned an unparsable chain id", "chain_id", chainIdHex, "error", err)
		return
	}
	if config.ChainId(chainId) != a.config.ChainID {
		a.logger.Sugar().Warnw("Wallet is on an unexpected chain",
			"chain_id", chainId,
			"chain", config.GetChainName(config.ChainId(chainId)),
			"expected", a.config.ChainID,
		)
	}
}

func (pg *page) close() {
	pg.display.Seal()
	pg.cancel()
	if pg.session != nil {
		pg.session.Unload()
	}
	if pg.gateway != nil {
		pg.gateway.Wait()
	}
	if err := pg.provider.Close(); err != nil {
		pg.logger.Sugar().Warnw("Failed to close provider", "error", err)
	}
}
