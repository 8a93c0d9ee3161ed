// Package listeners wires domain events to their side effects: the admin
// websocket order feed and the confirmation-email job.
package listeners

import (
	"sync"

	"github.com/shashiranjanraj/aushadhi/app/jobs"
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/event"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/queue"
	"github.com/shashiranjanraj/aushadhi/pkg/ws"
)

// OrderFeed streams placed orders to connected admin dashboards.
var OrderFeed = ws.NewHub()

func init() { go OrderFeed.Run() }

// sseSubs are the server-sent-event fallback subscribers, keyed by their
// delivery channel.
var (
	sseMu   sync.Mutex
	sseSubs = map[chan []byte]struct{}{}
)

// SubscribeSSE registers a feed subscriber. The returned channel receives
// every broadcast until cancel is called.
func SubscribeSSE() (updates <-chan []byte, cancel func()) {
	ch := make(chan []byte, 16)
	sseMu.Lock()
	sseSubs[ch] = struct{}{}
	sseMu.Unlock()

	return ch, func() {
		sseMu.Lock()
		delete(sseSubs, ch)
		sseMu.Unlock()
	}
}

func broadcast(msg []byte) {
	OrderFeed.Broadcast <- msg

	sseMu.Lock()
	defer sseMu.Unlock()
	for ch := range sseSubs {
		select {
		case ch <- msg:
		default: // slow subscriber, drop rather than block the event
		}
	}
}

// Register attaches every event listener. Called once at boot, before the
// HTTP server starts accepting requests.
func Register() {
	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		order, ok := payload.(*models.Order)
		if !ok {
			return
		}

		broadcast(services.FeedMessage(order))

		job := &jobs.OrderConfirmationJob{
			OrderNumber:    order.OrderNumber,
			Email:          order.Email,
			FirstName:      order.FirstName,
			Total:          order.Total,
			DeliveryMethod: order.DeliveryMethod,
			BranchID:       order.BranchID,
		}
		if err := queue.Dispatch(job); err != nil {
			logger.Error("dispatch order confirmation", "order", order.OrderNumber, "error", err)
		}
	})
}
