// file: internals/features/finance/payments/service/reaper.go
package service

import (
	"log"
	"time"

	"gorm.io/gorm"
)

/* =========================================================
   Reaper sesi kadaluarsa.
   Sapu berkala: pending yang lewat expires_at → expired.
   Webhook expiry dari gateway tetap jadi sumber utama; reaper
   cuma jaring pengaman kalau webhook tidak pernah datang.
========================================================= */

func StartChargeSessionReaper(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		for {
			n, err := ReapExpiredSessions(db)
			if err != nil {
				log.Printf("[REAPER] gagal sapu sesi kadaluarsa: %v", err)
			} else if n > 0 {
				log.Printf("[REAPER] %d sesi pending ditandai expired", n)
			}
			time.Sleep(interval)
		}
	}()
}

// ReapExpiredSessions menandai semua sesi pending yang sudah lewat TTL.
func ReapExpiredSessions(db *gorm.DB) (int64, error) {
	res := db.Exec(`
		UPDATE charge_sessions
		   SET charge_session_status = 'expired',
		       charge_session_updated_at = NOW()
		 WHERE charge_session_status = 'pending'
		   AND charge_session_expires_at < NOW()
	`)
	return res.RowsAffected, res.Error
}
