package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	t.Run("Fresh page has only verify disabled", func(t *testing.T) {
		d := NewDisplay()
		s := d.Snapshot(false)
		assert.Equal(t, []ButtonId{Button_PersonalVerify}, s.DisabledButtons)
		assert.Len(t, s.Elements, len(Elements))
		assert.Empty(t, s.Alerts)
	})

	t.Run("Append keeps every entry", func(t *testing.T) {
		d := NewDisplay()
		d.AppendText(Element_ListenEventResult, "one")
		d.AppendText(Element_ListenEventResult, "two")
		d.AppendText(Element_ListenEventResult, "two")
		assert.Equal(t, []string{"one", "two", "two"}, d.Lines(Element_ListenEventResult))
	})

	t.Run("Alerts are handed out once", func(t *testing.T) {
		d := NewDisplay()
		d.Alert("Please connect wallet")

		assert.Equal(t, []string{"Please connect wallet"}, d.Snapshot(false).Alerts)
		assert.Equal(t, []string{"Please connect wallet"}, d.Snapshot(true).Alerts)
		assert.Empty(t, d.Snapshot(true).Alerts)
	})

	t.Run("Reset clears the page", func(t *testing.T) {
		d := NewDisplay()
		d.SetText(Element_ShowAccount, "0xabc")
		d.SetButtonDisabled(Button_PersonalVerify, false)
		d.Alert("x")

		d.Reset()
		assert.Equal(t, "", d.Text(Element_ShowAccount))
		assert.True(t, d.ButtonDisabled(Button_PersonalVerify))
		assert.Empty(t, d.Snapshot(false).Alerts)
	})
}

func TestPageDisplay(t *testing.T) {
	t.Run("Writes reach the shared display", func(t *testing.T) {
		d := NewDisplay()
		pd := d.Page()

		pd.SetText(Element_ShowAccount, "0xabc")
		pd.AppendText(Element_ListenEventResult, "one")
		pd.SetButtonDisabled(Button_PersonalVerify, false)
		pd.Alert("Please connect wallet")

		assert.Equal(t, "0xabc", d.Text(Element_ShowAccount))
		assert.Equal(t, []string{"one"}, d.Lines(Element_ListenEventResult))
		assert.False(t, d.ButtonDisabled(Button_PersonalVerify))
		assert.Equal(t, []string{"Please connect wallet"}, d.Snapshot(false).Alerts)
	})

	t.Run("Sealed page cannot write into the next one", func(t *testing.T) {
		d := NewDisplay()
		old := d.Page()
		old.SetText(Element_LockTxHash, "0x01")

		old.Seal()
		d.Reset()
		next := d.Page()
		next.SetText(Element_ShowAccount, "0xabc")

		old.SetText(Element_LockTxHash, "0x02")
		old.AppendText(Element_ListenEventResult, "Deposited: {}")
		old.SetButtonDisabled(Button_PersonalVerify, false)
		old.Alert("Please connect wallet")

		assert.True(t, old.Sealed())
		assert.False(t, next.Sealed())
		assert.Equal(t, "", d.Text(Element_LockTxHash))
		assert.Equal(t, "", d.Text(Element_ListenEventResult))
		assert.True(t, d.ButtonDisabled(Button_PersonalVerify))
		assert.Empty(t, d.Snapshot(false).Alerts)
		assert.Equal(t, "0xabc", d.Text(Element_ShowAccount))
	})
}
