package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber returns ORD-YYYYMMDD-XXXXXX.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "ORD-" + now.Format("20060102") + "-" + suffix
}
