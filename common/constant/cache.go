package constant

import "time"

const (
	StockScanLock = "stock:scan_lock"
)

const (
	StockScanLockDefaultTTL = 1 * time.Minute
)
