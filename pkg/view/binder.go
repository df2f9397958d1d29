package view

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

var (
	ErrUnknownButton  = errors.New("unknown button")
	ErrButtonDisabled = errors.New("button is disabled")
	ErrPageNotLoaded  = errors.New("page is not loaded")
)

// ClickHandler runs the action behind a button. Results and failures are written to the
// display by the handler itself, a returned error is only logged.
type ClickHandler func(ctx context.Context) error

// Binder routes button clicks to the handlers of the currently loaded page.
type Binder struct {
	display *Display
	logger  *zap.Logger

	mu       sync.RWMutex
	pageCtx  context.Context
	handlers map[ButtonId]ClickHandler
}

func NewBinder(display *Display, logger *zap.Logger) *Binder {
	return &Binder{
		display: display,
		logger:  logger,
	}
}

// Bind attaches handlers for a page. Work started by a click runs under pageCtx, so it
// is abandoned when the page goes away rather than when the http request ends.
func (b *Binder) Bind(pageCtx context.Context, handlers map[ButtonId]ClickHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pageCtx = pageCtx
	b.handlers = handlers
	b.logger.Sugar().Debugw("Page handlers bound", "buttons", len(handlers))
}

// Unbind detaches the current page's handlers.
func (b *Binder) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pageCtx = nil
	b.handlers = nil
}

func (b *Binder) Bound() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.handlers != nil
}

// Click runs the handler bound to id and returns the id assigned to the click.
func (b *Binder) Click(id ButtonId) (string, error) {
	if !isKnownButton(id) {
		return "", ErrUnknownButton
	}

	b.mu.RLock()
	pageCtx := b.pageCtx
	handler, ok := b.handlers[id]
	b.mu.RUnlock()

	if pageCtx == nil {
		return "", ErrPageNotLoaded
	}
	if !ok {
		return "", ErrUnknownButton
	}
	if b.display.ButtonDisabled(id) {
		return "", ErrButtonDisabled
	}

	clickId := uuid.New().String()
	ctx := types.WithClickId(pageCtx, clickId)

	b.logger.Sugar().Infow("Button clicked", "button", id, "clickId", clickId)
	if err := handler(ctx); err != nil {
		b.logger.Sugar().Warnw("Button handler failed",
			"button", id,
			"clickId", clickId,
			"error", err,
		)
	}
	return clickId, nil
}

func isKnownButton(id ButtonId) bool {
	for _, b := range Buttons {
		if b == id {
			return true
		}
	}
	return false
}
