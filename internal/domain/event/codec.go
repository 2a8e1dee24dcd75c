package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEventType = errors.New("unknown event type")

type decodeFunc func(data []byte) (Payload, error)

var decoders = map[string]decodeFunc{
	TypeCartCreated:          decoder[CartCreatedV1](),
	TypeItemAdded:            decoder[ItemAddedV1](),
	TypeItemQuantityUpdated:  decoder[ItemQuantityUpdatedV1](),
	TypeItemRemoved:          decoder[ItemRemovedV1](),
	TypeCouponApplied:        decoder[CouponAppliedV1](),
	TypeCouponRemoved:        decoder[CouponRemovedV1](),
	TypeShippingSelected:     decoder[ShippingSelectedV1](),
	TypeTotalsRecalculated:   decoder[TotalsRecalculatedV1](),
	TypeCartCleared:          decoder[CartClearedV1](),
	TypeItemSavedForLater:    decoder[ItemSavedForLaterV1](),
	TypeSavedItemMovedToCart: decoder[SavedItemMovedToCartV1](),
	TypePaymentSet:           decoder[PaymentSetV1](),
	TypeCartDeactivated:      decoder[CartDeactivatedV1](),
	TypeCartSnapshot:         decoder[CartSnapshotV1](),
}

func decoder[T Payload]() decodeFunc {
	return func(data []byte) (Payload, error) {
		var p T
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Encode returns the type tag and serialized form of a payload.
func Encode(p Payload) (string, []byte, error) {
	if p == nil {
		return "", nil, errors.New("event: nil payload")
	}
	eventType := p.EventType()
	if _, ok := decoders[eventType]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", nil, fmt.Errorf("event: encode %s: %w", eventType, err)
	}
	return eventType, data, nil
}

// Decode restores a payload from its type tag and serialized form.
func Decode(eventType string, data []byte) (Payload, error) {
	decode, ok := decoders[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}
	p, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("event: decode %s: %w", eventType, err)
	}
	return p, nil
}

// Types lists every registered event type.
func Types() []string {
	out := make([]string, 0, len(decoders))
	for t := range decoders {
		out = append(out, t)
	}
	return out
}
