package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DeliveryStream is the Redis stream that records every delivered item.
const DeliveryStream = "qotd.deliveries"

const deliveryStreamMaxLen = 10000

// Delivery describes one item sent to a guild channel.
type Delivery struct {
	RequestID string
	GuildID   string
	ChannelID string
	Kind      string // question or poll
	Source    string // curated or custom
	ItemID    int64
	At        time.Time
}

// Publisher appends deliveries to DeliveryStream.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// PublishDelivery appends d to the stream, trimming it to roughly the last
// deliveryStreamMaxLen entries.
func (p *Publisher) PublishDelivery(ctx context.Context, d Delivery) error {
	if d.At.IsZero() {
		d.At = time.Now()
	}
	_, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: DeliveryStream,
		MaxLen: deliveryStreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"request_id": d.RequestID,
			"guild_id":   d.GuildID,
			"channel_id": d.ChannelID,
			"kind":       d.Kind,
			"source":     d.Source,
			"item_id":    strconv.FormatInt(d.ItemID, 10),
			"at":         d.At.UTC().Format(time.RFC3339),
		},
	}).Result()
	return err
}
