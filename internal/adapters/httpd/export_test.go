package httpd

import "time"

// SetNow replaces the clock used for the Expires header.
func (h *BundleHandler) SetNow(now func() time.Time) {
	h.now = now
}
