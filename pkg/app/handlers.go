package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/simple-dapp/simple-dapp-go/pkg/config"
	"github.com/simple-dapp/simple-dapp-go/pkg/transactionSigner"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
)

var errNeedSecondAccount = errors.New("need a second account")

func (pg *page) handlers() map[view.ButtonId]view.ClickHandler {
	return map[view.ButtonId]view.ClickHandler{
		view.Button_EnableEthereum: pg.onEnableEthereum,
		view.Button_SendEth:        pg.onSendEth,
		view.Button_PersonalSign:   pg.onPersonalSign,
		view.Button_PersonalVerify: pg.onPersonalVerify,
		view.Button_Lock:           pg.onLock,
		view.Button_Unlock:         pg.onUnlock,
		view.Button_StartListen:    pg.onStartListen,
	}
}

func (pg *page) onEnableEthereum(ctx context.Context) error {
	if _, err := pg.session.Connect(ctx); err != nil {
		pg.showError(view.Element_Status, err)
		return err
	}
	return nil
}

func (pg *page) onSendEth(ctx context.Context) error {
	if _, ok := pg.session.ActiveAccount(); !ok {
		return pg.alertNoAccount()
	}
	accounts := pg.session.Accounts()
	if len(accounts) < 2 {
		pg.showError(view.Element_SendEthResult, errNeedSecondAccount)
		return errNeedSecondAccount
	}

	hash, err := pg.txSigner.SendTransaction(ctx, &transactionSigner.TransactionRequest{
		To:    accounts[1],
		Value: big.NewInt(config.SendEthAmountWei),
	})
	if err != nil {
		pg.showError(view.Element_SendEthResult, err)
		return err
	}
	pg.display.SetText(view.Element_SendEthResult, hash.Hex())
	return nil
}

func (pg *page) onPersonalSign(ctx context.Context) error {
	_, err := pg.signer.Sign(ctx)
	if errors.Is(err, types.ErrNoAccount) {
		return pg.alertNoAccount()
	}
	return err
}

func (pg *page) onPersonalVerify(ctx context.Context) error {
	_, err := pg.signer.Verify(ctx)
	if err != nil {
		pg.showError(view.Element_PersonalSignVerifySigUtilResult, err)
		pg.showError(view.Element_PersonalSignVerifyECRecover, err)
	}
	return err
}

func (pg *page) onLock(ctx context.Context) error {
	ref, err := pg.gateway.Deposit(ctx, pg.config.GetDepositAmount(), pg.config.GetLockDuration())
	return pg.showReceipt(view.Element_LockTxHash, ref, err)
}

func (pg *page) onUnlock(ctx context.Context) error {
	ref, err := pg.gateway.Withdraw(ctx)
	return pg.showReceipt(view.Element_UnlockTxHash, ref, err)
}

func (pg *page) onStartListen(ctx context.Context) error {
	err := pg.gateway.StartListening(ctx, func(ev *types.ContractEvent) {
		pg.display.AppendText(view.Element_ListenEventResult, FormatEvent(ev))
	})
	if errors.Is(err, types.ErrNoAccount) {
		return pg.alertNoAccount()
	}
	if err != nil {
		pg.showError(view.Element_ListenEventResult, err)
	}
	return err
}

func (pg *page) showReceipt(id view.ElementId, ref *types.TransactionReceiptRef, err error) error {
	if errors.Is(err, types.ErrNoAccount) {
		return pg.alertNoAccount()
	}
	if err != nil {
		pg.showError(id, err)
		return err
	}
	pg.display.SetText(id, ref.TransactionHash)
	return nil
}

func (pg *page) alertNoAccount() error {
	pg.display.Alert(types.ConnectWalletAlert)
	return types.ErrNoAccount
}

func (pg *page) showError(id view.ElementId, err error) {
	pg.display.SetText(id, fmt.Sprintf("Error: %s", err.Error()))
}

// FormatEvent renders a contract event as its name followed by its arguments as JSON.
func FormatEvent(ev *types.ContractEvent) string {
	values, err := json.Marshal(ev.ReturnValues())
	if err != nil {
		return string(ev.Name)
	}
	return fmt.Sprintf("%s: %s", ev.Name, values)
}
