package caller

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/simple-dapp/simple-dapp-go/pkg/bindings/LockV2"
	"github.com/simple-dapp/simple-dapp-go/pkg/contractCaller"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/transactionSigner"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultLogPollInterval = 2 * time.Second

type ContractCallerConfig struct {
	LockAddress common.Address

	// LogPollInterval paces eth_getLogs when the transport cannot push log subscriptions.
	LogPollInterval time.Duration
}

type ContractCaller struct {
	backend provider.ChainBackend
	signer  transactionSigner.ITransactionSigner
	journal journal.IEventJournal
	config  *ContractCallerConfig
	logger  *zap.Logger

	mu      sync.Mutex
	lock    *LockV2.LockV2Filterer
	lockAbi *abi.ABI
	wg      sync.WaitGroup
}

var _ contractCaller.IContractCaller = (*ContractCaller)(nil)

// NewContractCaller builds a gateway for the page. The contract itself is bound on first
// use. eventJournal may be nil.
func NewContractCaller(
	backend provider.ChainBackend,
	signer transactionSigner.ITransactionSigner,
	eventJournal journal.IEventJournal,
	cfg *ContractCallerConfig,
	logger *zap.Logger,
) *ContractCaller {
	return &ContractCaller{
		backend: backend,
		signer:  signer,
		journal: eventJournal,
		config:  cfg,
		logger:  logger,
	}
}

// bind checks for a connected account and binds the Lock contract the first time it
// succeeds. Later calls reuse the binding.
func (cc *ContractCaller) bind() error {
	if _, err := cc.signer.GetFromAddress(); err != nil {
		return err
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.lock != nil {
		return nil
	}

	lockAbi, err := LockV2.LockV2MetaData.GetAbi()
	if err != nil {
		return errors.Wrap(err, "parsing LockV2 abi")
	}
	lock, err := LockV2.NewLockV2Filterer(cc.config.LockAddress, cc.backend)
	if err != nil {
		return errors.Wrap(err, "binding LockV2 contract")
	}
	cc.lockAbi = lockAbi
	cc.lock = lock
	cc.logger.Sugar().Infow("Bound Lock contract", "address", cc.config.LockAddress.Hex())
	return nil
}

// Bound reports whether the contract has been bound on this page.
func (cc *ContractCaller) Bound() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.lock != nil
}

func (cc *ContractCaller) Deposit(ctx context.Context, amount *big.Int, lockDuration *big.Int) (*types.TransactionReceiptRef, error) {
	if err := cc.bind(); err != nil {
		return nil, err
	}
	data, err := cc.lockAbi.Pack("deposit", lockDuration)
	if err != nil {
		return nil, errors.Wrap(err, "packing deposit call")
	}
	return cc.sendTransaction(ctx, "deposit", &transactionSigner.TransactionRequest{
		To:    cc.config.LockAddress,
		Value: amount,
		Data:  data,
	})
}

func (cc *ContractCaller) Withdraw(ctx context.Context) (*types.TransactionReceiptRef, error) {
	if err := cc.bind(); err != nil {
		return nil, err
	}
	data, err := cc.lockAbi.Pack("withdraw")
	if err != nil {
		return nil, errors.Wrap(err, "packing withdraw call")
	}
	return cc.sendTransaction(ctx, "withdraw", &transactionSigner.TransactionRequest{
		To:   cc.config.LockAddress,
		Data: data,
	})
}

func (cc *ContractCaller) StartListening(ctx context.Context, sink contractCaller.EventSink) error {
	if err := cc.bind(); err != nil {
		return err
	}

	head, err := cc.backend.BlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "reading latest block")
	}

	err = cc.watch(ctx, head, sink)
	if errors.Is(err, rpc.ErrNotificationsUnsupported) {
		cc.logger.Sugar().Infow("Log subscriptions unsupported, polling for contract events",
			"from_block", head,
		)
		cc.wg.Add(1)
		go func() {
			defer cc.wg.Done()
			cc.pollLogs(ctx, head, sink)
		}()
		return nil
	}
	return err
}

// Wait blocks until every listener started on this gateway has stopped.
func (cc *ContractCaller) Wait() {
	cc.wg.Wait()
}

func (cc *ContractCaller) watch(ctx context.Context, start uint64, sink contractCaller.EventSink) error {
	opts := &bind.WatchOpts{Start: &start, Context: ctx}

	deposited := make(chan *LockV2.LockV2Deposited)
	depositedSub, err := cc.lock.WatchDeposited(opts, deposited, nil)
	if err != nil {
		return err
	}
	withdrawn := make(chan *LockV2.LockV2Withdrawn)
	withdrawnSub, err := cc.lock.WatchWithdrawn(opts, withdrawn, nil)
	if err != nil {
		depositedSub.Unsubscribe()
		return err
	}
	cc.logger.Sugar().Infow("Listening for contract events", "from_block", start)

	cc.wg.Add(1)
	go func() {
		defer cc.wg.Done()
		defer depositedSub.Unsubscribe()
		defer withdrawnSub.Unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-deposited:
				cc.deliver(ctx, depositedEvent(ev), sink)
			case ev := <-withdrawn:
				cc.deliver(ctx, withdrawnEvent(ev), sink)
			case err := <-depositedSub.Err():
				cc.logSubscriptionEnd(ctx, types.ContractEvent_Deposited, err)
				return
			case err := <-withdrawnSub.Err():
				cc.logSubscriptionEnd(ctx, types.ContractEvent_Withdrawn, err)
				return
			}
		}
	}()
	return nil
}

func (cc *ContractCaller) pollLogs(ctx context.Context, from uint64, sink contractCaller.EventSink) {
	interval := cc.config.LogPollInterval
	if interval <= 0 {
		interval = defaultLogPollInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	topics := []common.Hash{
		cc.lockAbi.Events[string(types.ContractEvent_Deposited)].ID,
		cc.lockAbi.Events[string(types.ContractEvent_Withdrawn)].ID,
	}

	next := from
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		head, err := cc.backend.BlockNumber(ctx)
		if err != nil {
			cc.logger.Sugar().Warnw("Failed to read latest block", "error", err)
			continue
		}
		if head < next {
			continue
		}

		logs, err := cc.backend.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(next),
			ToBlock:   new(big.Int).SetUint64(head),
			Addresses: []common.Address{cc.config.LockAddress},
			Topics:    [][]common.Hash{topics},
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			cc.logger.Sugar().Warnw("Failed to fetch contract logs", "from_block", next, "to_block", head, "error", err)
			continue
		}
		for _, log := range logs {
			ev, err := cc.parseLog(log)
			if err != nil {
				cc.logger.Sugar().Warnw("Skipping undecodable log", "tx_hash", log.TxHash.Hex(), "error", err)
				continue
			}
			if ctx.Err() != nil {
				return
			}
			cc.deliver(ctx, ev, sink)
		}
		next = head + 1
	}
}

func (cc *ContractCaller) parseLog(log ethTypes.Log) (*types.ContractEvent, error) {
	if len(log.Topics) == 0 {
		return nil, errors.New("log has no topics")
	}
	switch log.Topics[0] {
	case cc.lockAbi.Events[string(types.ContractEvent_Deposited)].ID:
		ev, err := cc.lock.ParseDeposited(log)
		if err != nil {
			return nil, err
		}
		return depositedEvent(ev), nil
	case cc.lockAbi.Events[string(types.ContractEvent_Withdrawn)].ID:
		ev, err := cc.lock.ParseWithdrawn(log)
		if err != nil {
			return nil, err
		}
		return withdrawnEvent(ev), nil
	}
	return nil, errors.Errorf("unknown event topic %s", log.Topics[0].Hex())
}

// deliver journals the event and hands it to the sink. A journal failure is logged and
// does not hold the event back.
func (cc *ContractCaller) deliver(ctx context.Context, ev *types.ContractEvent, sink contractCaller.EventSink) {
	cc.logger.Sugar().Infow("Contract event received",
		"name", ev.Name,
		"user", ev.User.Hex(),
		"block", ev.BlockNumber,
		"tx_hash", ev.TxHash.Hex(),
	)
	if cc.journal != nil {
		if err := cc.journal.SaveEvent(ctx, ev); err != nil {
			cc.logger.Sugar().Warnw("Failed to journal contract event", "name", ev.Name, "error", err)
		}
	}
	sink(ev)
}

func (cc *ContractCaller) logSubscriptionEnd(ctx context.Context, name types.ContractEventName, err error) {
	if err != nil && ctx.Err() == nil {
		cc.logger.Sugar().Errorw("Contract event subscription failed", "name", name, "error", err)
		return
	}
	cc.logger.Sugar().Debugw("Contract event subscription closed", "name", name)
}

func depositedEvent(ev *LockV2.LockV2Deposited) *types.ContractEvent {
	return &types.ContractEvent{
		Name:        types.ContractEvent_Deposited,
		User:        ev.User,
		Amount:      ev.Amount,
		ReleaseTime: ev.ReleaseTime,
		BlockNumber: ev.Raw.BlockNumber,
		TxHash:      ev.Raw.TxHash,
		LogIndex:    ev.Raw.Index,
	}
}

func withdrawnEvent(ev *LockV2.LockV2Withdrawn) *types.ContractEvent {
	return &types.ContractEvent{
		Name:        types.ContractEvent_Withdrawn,
		User:        ev.User,
		Amount:      ev.Amount,
		BlockNumber: ev.Raw.BlockNumber,
		TxHash:      ev.Raw.TxHash,
		LogIndex:    ev.Raw.Index,
	}
}
