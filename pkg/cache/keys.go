package cache

import (
	"fmt"
	"time"
)

const (
	// idem:order:{user_id}:{idempotency_key} -> order_id
	keyIdemOrderCreate = "idem:order:%s:%s"

	// order_status:{order_id} -> {"order_id": "...", "status": "...", ...}
	keyOrderStatus = "order_status:%s"

	// cart:{user_id} -> {"date": "...", "items": {...}}
	keyCart = "cart:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLCart        = 48 * time.Hour
)

func IdemOrderKey(userID, idemKey string) string {
	return fmt.Sprintf(keyIdemOrderCreate, userID, idemKey)
}

func OrderStatusKey(orderID string) string {
	return fmt.Sprintf(keyOrderStatus, orderID)
}

func CartKey(userID string) string {
	return fmt.Sprintf(keyCart, userID)
}
