package session

import (
	"context"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/testutil"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	mu      sync.Mutex
	reasons []string
}

func (r *countingReloader) Reload(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *countingReloader) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reasons)
}

type recordingBalance struct {
	mu        sync.Mutex
	refreshed []common.Address
}

func (b *recordingBalance) Refresh(ctx context.Context, address common.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshed = append(b.refreshed, address)
}

var (
	accountA = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	accountB = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

type fixture struct {
	provider *testutil.MockProvider
	display  *view.Display
	balance  *recordingBalance
	reloader *countingReloader
	session  *Session
}

func newFixture(t *testing.T, initialAccounts ...common.Address) *fixture {
	t.Helper()
	l := testutil.NewTestLogger(t)
	f := &fixture{
		provider: testutil.NewMockProvider(l),
		display:  view.NewDisplay(),
		balance:  &recordingBalance{},
		reloader: &countingReloader{},
	}
	f.provider.Respond("eth_chainId", "0x7a69")
	if initialAccounts == nil {
		initialAccounts = []common.Address{}
	}
	f.provider.Respond("eth_accounts", initialAccounts)
	f.session = NewSession(f.provider, f.display, f.balance, f.reloader, l)
	return f
}

func TestSession_Load(t *testing.T) {
	t.Run("Authorized account is shown", func(t *testing.T) {
		f := newFixture(t, accountA, accountB)
		require.NoError(t, f.session.Load(context.Background()))

		snap := f.session.Snapshot()
		assert.Equal(t, "0x7a69", snap.ChainId)
		require.True(t, snap.HasAccount())
		assert.Equal(t, accountA, *snap.ActiveAccount)
		assert.Equal(t, accountA.Hex(), f.display.Text(view.Element_ShowAccount))
		assert.Equal(t, []common.Address{accountA}, f.balance.refreshed)
		assert.Equal(t, []common.Address{accountA, accountB}, f.session.Accounts())
		assert.Equal(t, provider.WalletState{
			ChainId:  "0x7a69",
			Accounts: []common.Address{accountA, accountB},
		}, f.session.WalletState())

		assert.Equal(t, 1, f.provider.SubscriberCount(provider.EventChainChanged))
		assert.Equal(t, 1, f.provider.SubscriberCount(provider.EventAccountsChanged))
	})

	t.Run("No authorized account", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Load(context.Background()))

		_, ok := f.session.ActiveAccount()
		assert.False(t, ok)
		assert.Equal(t, StatusDisconnected, f.display.Text(view.Element_Status))
		assert.Empty(t, f.balance.refreshed)
	})

	t.Run("Chain id failure stops the load", func(t *testing.T) {
		f := newFixture(t)
		f.provider.Fail("eth_chainId", -32603, "internal error")
		assert.Error(t, f.session.Load(context.Background()))
	})

	t.Run("Accounts failure is logged only", func(t *testing.T) {
		f := newFixture(t)
		f.provider.Fail("eth_accounts", -32603, "internal error")
		require.NoError(t, f.session.Load(context.Background()))
		assert.Equal(t, 1, f.provider.SubscriberCount(provider.EventAccountsChanged))
	})

	t.Run("Unload drops subscriptions", func(t *testing.T) {
		f := newFixture(t, accountA)
		require.NoError(t, f.session.Load(context.Background()))
		f.session.Unload()

		assert.Equal(t, 0, f.provider.SubscriberCount(provider.EventChainChanged))
		assert.Equal(t, 0, f.provider.SubscriberCount(provider.EventAccountsChanged))

		f.provider.Emit(provider.Event{Name: provider.EventChainChanged, ChainId: "0x1"})
		assert.Equal(t, 0, f.reloader.count())
	})
}

func TestSession_AccountsChanged(t *testing.T) {
	t.Run("Empty list always disconnects", func(t *testing.T) {
		for _, initial := range [][]common.Address{{accountA}, nil} {
			f := newFixture(t, initial...)
			require.NoError(t, f.session.Load(context.Background()))

			f.provider.Emit(provider.Event{Name: provider.EventAccountsChanged, Accounts: []common.Address{}})

			_, ok := f.session.ActiveAccount()
			assert.False(t, ok)
			assert.Equal(t, StatusDisconnected, f.display.Text(view.Element_Status))
			assert.Equal(t, "", f.display.Text(view.Element_ShowAccount))
		}
	})

	t.Run("New first account refreshes balance", func(t *testing.T) {
		f := newFixture(t, accountA)
		require.NoError(t, f.session.Load(context.Background()))

		f.provider.Emit(provider.Event{Name: provider.EventAccountsChanged, Accounts: []common.Address{accountB, accountA}})

		active, ok := f.session.ActiveAccount()
		require.True(t, ok)
		assert.Equal(t, accountB, active)
		assert.Equal(t, accountB.Hex(), f.display.Text(view.Element_ShowAccount))
		assert.Equal(t, []common.Address{accountA, accountB}, f.balance.refreshed)
	})

	t.Run("Same first account is a no-op", func(t *testing.T) {
		f := newFixture(t, accountA)
		require.NoError(t, f.session.Load(context.Background()))

		f.provider.Emit(provider.Event{Name: provider.EventAccountsChanged, Accounts: []common.Address{accountA, accountB}})

		assert.Equal(t, []common.Address{accountA}, f.balance.refreshed)
		assert.Equal(t, []common.Address{accountA, accountB}, f.session.Accounts())
	})

	t.Run("Account returning after disconnect is shown again", func(t *testing.T) {
		f := newFixture(t, accountA)
		require.NoError(t, f.session.Load(context.Background()))

		f.provider.Emit(provider.Event{Name: provider.EventAccountsChanged, Accounts: []common.Address{}})
		f.provider.Emit(provider.Event{Name: provider.EventAccountsChanged, Accounts: []common.Address{accountA}})

		assert.Equal(t, accountA.Hex(), f.display.Text(view.Element_ShowAccount))
		assert.Equal(t, []common.Address{accountA, accountA}, f.balance.refreshed)
	})
}

func TestSession_ChainChanged(t *testing.T) {
	f := newFixture(t, accountA)
	require.NoError(t, f.session.Load(context.Background()))

	for i, chainId := range []string{"0x1", "0x1", "0xaa36a7"} {
		f.provider.Emit(provider.Event{Name: provider.EventChainChanged, ChainId: chainId})
		assert.Equal(t, i+1, f.reloader.count(), "one reload per event")
	}
}

func TestSession_Connect(t *testing.T) {
	t.Run("Authorized accounts become active", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Load(context.Background()))
		f.provider.Respond("eth_requestAccounts", []common.Address{accountA, accountB})

		accounts, err := f.session.Connect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []common.Address{accountA, accountB}, accounts)

		active, ok := f.session.ActiveAccount()
		require.True(t, ok)
		assert.Equal(t, accountA, active)
		assert.Equal(t, "connected: "+accountA.Hex()+", "+accountB.Hex(), f.display.Text(view.Element_Status))
	})

	t.Run("User rejection", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Load(context.Background()))
		f.provider.Fail("eth_requestAccounts", types.UserRejectedRequestCode, "User rejected the request.")

		_, err := f.session.Connect(context.Background())
		require.Error(t, err)
		assert.True(t, provider.IsUserRejected(err))
		_, ok := f.session.ActiveAccount()
		assert.False(t, ok)
	})
}
