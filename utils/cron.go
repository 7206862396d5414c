package utils

import (
	"time"

	"videoshub-backend/internal/models"
	"videoshub-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// StartTicketCleanupTask sweeps expired recovery tickets once a day. The
// first run is aligned to the next local midnight. The sweep is hygiene
// only: verify/update re-check expiry at use time.
func StartTicketCleanupTask() {
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	logrus.Infof("Expired tickets clearing is planned at: %s (midnight)", nextMidnight.Format("15:04 02.01.2006"))

	go func() {
		time.Sleep(time.Until(nextMidnight))
		clearExpiredTickets()

		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			clearExpiredTickets()
		}
	}()
}

func clearExpiredTickets() {
	result := repository.DB.
		Where("expires_at < ?", time.Now().UnixMilli()).
		Delete(&models.RecoveryTicket{})
	if result.Error != nil {
		logrus.Errorf("Failed to clear expired tickets: %v", result.Error)
		return
	}
	logrus.Infof("Cleared %d expired recovery tickets", result.RowsAffected)
}
