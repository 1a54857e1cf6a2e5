package realtime

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"go-chatline/internal/metrics"
	chat "go-chatline/internal/pkg/chat/domain"
)

// receiveMessageFrame is the outbound wire shape of the ReceiveMessage push
// event.
type receiveMessageFrame struct {
	Type      string `json:"type"`
	SenderID  string `json:"sender_id"`
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

// Notifier fans a message event out to a user's live connections. It
// implements the push port of the chat use cases on top of the Registry.
type Notifier struct {
	registry *Registry
	log      zerolog.Logger
}

func NewNotifier(registry *Registry, log zerolog.Logger) *Notifier {
	return &Notifier{registry: registry, log: log}
}

// PushMessage delivers ev to every live connection of userID except
// excludeConnID (the originating connection). Delivery is best-effort per
// connection: a dead or saturated handle is unregistered and closed, and
// never aborts delivery to the remaining targets. Returns the number of
// connections the event was handed to.
func (n *Notifier) PushMessage(userID string, excludeConnID string, ev chat.MessageEvent) int {
	targets := n.registry.ConnectionsFor(userID)
	if len(targets) == 0 {
		return 0
	}

	payload, err := json.Marshal(receiveMessageFrame{
		Type:      "message",
		SenderID:  ev.SenderID,
		MessageID: strconv.FormatInt(ev.MessageID, 10),
		Content:   ev.Content,
	})
	if err != nil {
		n.log.Error().Err(err).Msg("encode push event")
		return 0
	}

	delivered := 0
	for _, conn := range targets {
		if conn.ID == excludeConnID {
			continue
		}
		if err := conn.Send(payload); err != nil {
			// Stale handle: drop it from the registry so later lookups
			// don't see it again.
			n.registry.Unregister(conn)
			metrics.DeliveryDrops.Inc()
			n.log.Warn().
				Err(err).
				Str("user_id", userID).
				Str("conn_id", conn.ID).
				Msg("dropping dead connection")
			continue
		}
		delivered++
		metrics.MessagesDelivered.Inc()
	}
	return delivered
}
