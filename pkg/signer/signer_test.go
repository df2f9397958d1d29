package signer

import (
	"context"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/testutil"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAccount struct {
	address *common.Address
}

func (a staticAccount) ActiveAccount() (common.Address, bool) {
	if a.address == nil {
		return common.Address{}, false
	}
	return *a.address, true
}

// ecRecoverResponder answers personal_ecRecover by local recovery, like a wallet would.
func ecRecoverResponder(params []interface{}) (interface{}, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("expected 2 params, got %d", len(params))
	}
	return RecoverPersonalSignature(params[0].(string), params[1].(string))
}

func newTestSigner(t *testing.T, from *common.Address) (*Signer, *testutil.MockProvider, *view.Display) {
	t.Helper()
	l := testutil.NewTestLogger(t)
	p := testutil.NewMockProvider(l)
	p.On("personal_ecRecover", ecRecoverResponder)
	d := view.NewDisplay()
	return NewSigner(p, d, staticAccount{address: from}, l), p, d
}

func TestRecoverPersonalSignature(t *testing.T) {
	accounts := testutil.CreateTestAccounts(t, 2)
	msgHex := EncodeMessage(ExampleMessage)

	t.Run("Genuine signature", func(t *testing.T) {
		sig := testutil.PersonalSign(t, accounts[0].Key, []byte(ExampleMessage))
		recovered, err := RecoverPersonalSignature(msgHex, sig)
		require.NoError(t, err)
		assert.Equal(t, accounts[0].Address, recovered)
	})

	t.Run("Altered message", func(t *testing.T) {
		sig := testutil.PersonalSign(t, accounts[0].Key, []byte(ExampleMessage))
		recovered, err := RecoverPersonalSignature(EncodeMessage("Example message to sign!"), sig)
		if err == nil {
			assert.NotEqual(t, accounts[0].Address, recovered)
		}
	})

	t.Run("Wrong length", func(t *testing.T) {
		_, err := RecoverPersonalSignature(msgHex, "0x1234")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid signature length")
	})

	t.Run("Not hex", func(t *testing.T) {
		_, err := RecoverPersonalSignature("hello", "0x00")
		require.Error(t, err)
	})
}

func TestEncodeMessage(t *testing.T) {
	assert.Equal(t, "0x4578616d706c65206d65737361676520746f207369676e", EncodeMessage(ExampleMessage))
}

func TestSigner_Sign(t *testing.T) {
	accounts := testutil.CreateTestAccounts(t, 1)
	from := accounts[0].Address
	signature := testutil.PersonalSign(t, accounts[0].Key, []byte(ExampleMessage))

	t.Run("Signature is shown and verify enabled", func(t *testing.T) {
		s, p, d := newTestSigner(t, &from)
		p.Respond("personal_sign", signature)
		require.True(t, d.ButtonDisabled(view.Button_PersonalVerify))

		record, err := s.Sign(context.Background())
		require.NoError(t, err)
		assert.Equal(t, signature, record.SignatureHex)
		assert.Equal(t, from, record.Signer)
		assert.Equal(t, signature, d.Text(view.Element_PersonalSignResult))
		assert.False(t, d.ButtonDisabled(view.Button_PersonalVerify))

		reqs := p.RequestsFor("personal_sign")
		require.Len(t, reqs, 1)
		assert.Equal(t, []interface{}{EncodeMessage(ExampleMessage), hexLower(from)}, reqs[0].Params)
	})

	t.Run("No account", func(t *testing.T) {
		s, p, _ := newTestSigner(t, nil)
		_, err := s.Sign(context.Background())
		assert.ErrorIs(t, err, types.ErrNoAccount)
		assert.Empty(t, p.Requests())
	})

	t.Run("Rejected by user", func(t *testing.T) {
		s, p, d := newTestSigner(t, &from)
		p.Fail("personal_sign", types.UserRejectedRequestCode, "User rejected the request.")

		_, err := s.Sign(context.Background())
		require.Error(t, err)
		assert.True(t, provider.IsUserRejected(err))
		assert.Equal(t, "Error: User rejected the request.", d.Text(view.Element_PersonalSignResult))
		assert.True(t, d.ButtonDisabled(view.Button_PersonalVerify))
		assert.Nil(t, s.Record())
	})
}

func TestSigner_Verify(t *testing.T) {
	accounts := testutil.CreateTestAccounts(t, 2)
	signerA := accounts[0].Address

	t.Run("Nothing signed", func(t *testing.T) {
		s, _, _ := newTestSigner(t, &signerA)
		_, err := s.Verify(context.Background())
		assert.ErrorIs(t, err, types.ErrNoSignature)
	})

	t.Run("Genuine signature shows the signer on both paths", func(t *testing.T) {
		s, p, d := newTestSigner(t, &signerA)
		p.Respond("personal_sign", testutil.PersonalSign(t, accounts[0].Key, []byte(ExampleMessage)))
		_, err := s.Sign(context.Background())
		require.NoError(t, err)

		result, err := s.Verify(context.Background())
		require.NoError(t, err)
		assert.Equal(t, signerA, result.Local)
		assert.Equal(t, signerA, result.Provider)
		assert.Equal(t, signerA.Hex(), d.Text(view.Element_PersonalSignVerifySigUtilResult))
		assert.Equal(t, signerA.Hex(), d.Text(view.Element_PersonalSignVerifyECRecover))
	})

	t.Run("Signature from another key is reported on both paths", func(t *testing.T) {
		s, p, d := newTestSigner(t, &signerA)
		p.Respond("personal_sign", testutil.PersonalSign(t, accounts[1].Key, []byte(ExampleMessage)))
		_, err := s.Sign(context.Background())
		require.NoError(t, err)

		_, err = s.Verify(context.Background())
		require.NoError(t, err)
		other := accounts[1].Address
		assert.Equal(t,
			fmt.Sprintf("Error: Failed comparing %s to %s", other.Hex(), signerA.Hex()),
			d.Text(view.Element_PersonalSignVerifySigUtilResult))
		assert.Equal(t,
			fmt.Sprintf("Error: Failed to verify signer when comparing %s to %s", other.Hex(), signerA.Hex()),
			d.Text(view.Element_PersonalSignVerifyECRecover))
	})

	t.Run("Signature over an altered message does not verify", func(t *testing.T) {
		s, p, d := newTestSigner(t, &signerA)
		p.Respond("personal_sign", testutil.PersonalSign(t, accounts[0].Key, []byte("Example message to sign!")))
		_, err := s.Sign(context.Background())
		require.NoError(t, err)

		_, err = s.Verify(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, signerA.Hex(), d.Text(view.Element_PersonalSignVerifySigUtilResult))
		assert.Contains(t, d.Text(view.Element_PersonalSignVerifySigUtilResult), "Error:")
		assert.Contains(t, d.Text(view.Element_PersonalSignVerifyECRecover), "Error:")
	})

	t.Run("Provider failure leaves the local path intact", func(t *testing.T) {
		s, p, d := newTestSigner(t, &signerA)
		p.Respond("personal_sign", testutil.PersonalSign(t, accounts[0].Key, []byte(ExampleMessage)))
		p.Fail("personal_ecRecover", -32601, "the method personal_ecRecover does not exist/is not available")
		_, err := s.Sign(context.Background())
		require.NoError(t, err)

		result, err := s.Verify(context.Background())
		require.NoError(t, err)
		assert.Error(t, result.ProviderErr)
		assert.Equal(t, signerA.Hex(), d.Text(view.Element_PersonalSignVerifySigUtilResult))
		assert.Equal(t, "Error: the method personal_ecRecover does not exist/is not available",
			d.Text(view.Element_PersonalSignVerifyECRecover))
	})
}

func hexLower(a common.Address) string {
	b, _ := a.MarshalText()
	return string(b)
}
