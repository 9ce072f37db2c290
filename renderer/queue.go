package renderer

import (
	"context"
	"errors"

	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/coords"
)

// ErrQueueClosed is returned when sending to a renderer that stopped.
var ErrQueueClosed = errors.New("event queue is closed")

// PointerEvent is a pointer event as delivered by the host.
type PointerEvent struct {
	OffsetX, OffsetY     float32 // screen pixels, relative to the canvas
	MovementX, MovementY float32 // screen pixels since the last event
	Button               int
	IsPrimary            bool
}

// pointer converts the event into the input of an action.
func (e PointerEvent) pointer() action.Pointer {
	return action.Pointer{
		Position: coords.Pos[coords.Screen](e.OffsetX, e.OffsetY),
		Movement: coords.Off[coords.Screen](e.MovementX, e.MovementY),
	}
}

// activatesActions is true for the primary pointer's main button.
func (e PointerEvent) activatesActions() bool {
	return e.IsPrimary && e.Button == 0
}

// Messages understood by the event loop.
type (
	message interface{ isMessage() }

	exitMessage   struct{}
	resizeMessage struct {
		width, height, pixelRatio float32
	}
	pointerDownMessage struct{ event PointerEvent }
	pointerUpMessage   struct{ event PointerEvent }
	pointerMoveMessage struct{ event PointerEvent }
	commitMessage      struct{ tx *Transaction }
	drawMessage        struct{ completion chan<- Frame }
)

func (exitMessage) isMessage()        {}
func (resizeMessage) isMessage()      {}
func (pointerDownMessage) isMessage() {}
func (pointerUpMessage) isMessage()   {}
func (pointerMoveMessage) isMessage() {}
func (commitMessage) isMessage()      {}
func (drawMessage) isMessage()        {}

// EventQueue is the producer side of a renderer. It may be used from any
// goroutine. Messages are processed in the order they are sent.
type EventQueue struct {
	ch   chan<- message
	done <-chan struct{}
}

func (q EventQueue) send(ctx context.Context, msg message) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.ch <- msg:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Exit asks the event loop to stop.
func (q EventQueue) Exit() error {
	return q.send(context.Background(), exitMessage{})
}

// Resize changes the canvas size, given in screen pixels.
func (q EventQueue) Resize(width, height, pixelRatio float32) error {
	return q.send(context.Background(), resizeMessage{width: width, height: height, pixelRatio: pixelRatio})
}

// PointerDown reports a pointer button going down.
func (q EventQueue) PointerDown(e PointerEvent) error {
	return q.send(context.Background(), pointerDownMessage{event: e})
}

// PointerUp reports a pointer button going up.
func (q EventQueue) PointerUp(e PointerEvent) error {
	return q.send(context.Background(), pointerUpMessage{event: e})
}

// PointerMove reports a pointer move.
func (q EventQueue) PointerMove(e PointerEvent) error {
	return q.send(context.Background(), pointerMoveMessage{event: e})
}

// CommitTransaction applies a transaction. Transactions which do not fit
// the state of the renderer are dropped by the event loop.
func (q EventQueue) CommitTransaction(tx *Transaction) error {
	return q.send(context.Background(), commitMessage{tx: tx})
}

// Draw requests a frame and waits for it.
func (q EventQueue) Draw(ctx context.Context) (Frame, error) {
	completion := make(chan Frame, 1)
	if err := q.send(ctx, drawMessage{completion: completion}); err != nil {
		return Frame{}, err
	}
	select {
	case frame := <-completion:
		return frame, nil
	case <-q.done:
		select {
		case frame := <-completion:
			return frame, nil
		default:
			return Frame{}, ErrQueueClosed
		}
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}
