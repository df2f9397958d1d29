package view

import (
	"sort"
	"strings"
	"sync"
)

type ElementId string

const (
	Element_ShowAccount                     ElementId = "showAccount"
	Element_ShowBalance                     ElementId = "showBalance"
	Element_Status                          ElementId = "status"
	Element_PersonalSignResult              ElementId = "personalSignResult"
	Element_PersonalSignVerifySigUtilResult ElementId = "personalSignVerifySigUtilResult"
	Element_PersonalSignVerifyECRecover     ElementId = "personalSignVerifyECRecoverResult"
	Element_LockTxHash                      ElementId = "lockTxHash"
	Element_UnlockTxHash                    ElementId = "unlockTxHash"
	Element_ListenEventResult               ElementId = "listenEventResult"
	Element_SendEthResult                   ElementId = "sendEthResult"
)

// Elements lists every display element in page order
var Elements = []ElementId{
	Element_Status,
	Element_ShowAccount,
	Element_ShowBalance,
	Element_SendEthResult,
	Element_PersonalSignResult,
	Element_PersonalSignVerifySigUtilResult,
	Element_PersonalSignVerifyECRecover,
	Element_LockTxHash,
	Element_UnlockTxHash,
	Element_ListenEventResult,
}

type ButtonId string

const (
	Button_EnableEthereum ButtonId = "enableEthereumButton"
	Button_SendEth        ButtonId = "sendEthButton"
	Button_PersonalSign   ButtonId = "personalSignButton"
	Button_PersonalVerify ButtonId = "personalSignVerifyBtn"
	Button_Lock           ButtonId = "lockBtn"
	Button_Unlock         ButtonId = "unLockBtn"
	Button_StartListen    ButtonId = "startListenBtn"
)

// Buttons lists every button in page order
var Buttons = []ButtonId{
	Button_EnableEthereum,
	Button_SendEth,
	Button_PersonalSign,
	Button_PersonalVerify,
	Button_Lock,
	Button_Unlock,
	Button_StartListen,
}

// IDisplay is what components write their results to.
type IDisplay interface {
	SetText(id ElementId, text string)
	AppendText(id ElementId, text string)
	SetButtonDisabled(id ButtonId, disabled bool)
	Alert(message string)
}

// Snapshot is the rendered state of the page.
type Snapshot struct {
	Elements        map[ElementId]string `json:"elements"`
	DisabledButtons []ButtonId           `json:"disabledButtons"`
	Alerts          []string             `json:"alerts"`
}

// Display holds the element texts, button states and pending alerts of the current page.
type Display struct {
	mu       sync.RWMutex
	texts    map[ElementId]string
	disabled map[ButtonId]bool
	alerts   []string
}

var _ IDisplay = (*Display)(nil)

func NewDisplay() *Display {
	d := &Display{}
	d.Reset()
	return d
}

// Reset puts the page back in its freshly loaded state.
func (d *Display) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts = make(map[ElementId]string, len(Elements))
	d.disabled = map[ButtonId]bool{
		Button_PersonalVerify: true,
	}
	d.alerts = nil
}

func (d *Display) SetText(id ElementId, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[id] = text
}

// AppendText adds text on a new line after whatever id already shows.
func (d *Display) AppendText(id ElementId, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing := d.texts[id]; existing != "" {
		d.texts[id] = existing + "\n" + text
		return
	}
	d.texts[id] = text
}

func (d *Display) SetButtonDisabled(id ButtonId, disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disabled[id] = disabled
}

// Alert queues a blocking message for the user.
func (d *Display) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, message)
}

func (d *Display) Text(id ElementId) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.texts[id]
}

func (d *Display) ButtonDisabled(id ButtonId) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.disabled[id]
}

// Lines splits an appended element back into its entries.
func (d *Display) Lines(id ElementId) []string {
	text := d.Text(id)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Snapshot copies the current state. Alerts are handed out once: when drainAlerts is
// set they are cleared after being copied.
func (d *Display) Snapshot(drainAlerts bool) *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := &Snapshot{
		Elements:        make(map[ElementId]string, len(Elements)),
		DisabledButtons: []ButtonId{},
		Alerts:          append([]string{}, d.alerts...),
	}
	for _, id := range Elements {
		s.Elements[id] = d.texts[id]
	}
	for id, disabled := range d.disabled {
		if disabled {
			s.DisabledButtons = append(s.DisabledButtons, id)
		}
	}
	sort.Slice(s.DisabledButtons, func(i, j int) bool { return s.DisabledButtons[i] < s.DisabledButtons[j] })

	if drainAlerts {
		d.alerts = nil
	}
	return s
}

// PageDisplay is one page load's view of a shared Display. After Seal its writes are
// dropped, so work that outlives its page cannot show up on the next one.
type PageDisplay struct {
	display *Display

	mu     sync.RWMutex
	sealed bool
}

var _ IDisplay = (*PageDisplay)(nil)

// Page returns a new writable view of d for one page load.
func (d *Display) Page() *PageDisplay {
	return &PageDisplay{display: d}
}

// Seal stops all further writes. It returns once in-flight writes have landed.
func (p *PageDisplay) Seal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sealed = true
}

func (p *PageDisplay) Sealed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sealed
}

func (p *PageDisplay) SetText(id ElementId, text string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.sealed {
		p.display.SetText(id, text)
	}
}

func (p *PageDisplay) AppendText(id ElementId, text string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.sealed {
		p.display.AppendText(id, text)
	}
}

func (p *PageDisplay) SetButtonDisabled(id ButtonId, disabled bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.sealed {
		p.display.SetButtonDisabled(id, disabled)
	}
}

func (p *PageDisplay) Alert(message string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.sealed {
		p.display.Alert(message)
	}
}
