package audit

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/22kyasue/adlottery/internal/logger"
)

type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// Log records an auditable action. Audit writes are advisory and never fail
// the operation that triggered them.
func (s *Service) Log(uid string, action string, metadata string) {
	_, err := s.db.Exec(`
	INSERT INTO audit_logs(user_id, action, metadata, created_at)
	VALUES (?, ?, ?, ?)
	`, uid, action, metadata, time.Now().Unix())
	if err != nil {
		logger.Log.Warn("audit write failed",
			zap.String("action", action), zap.Error(err))
	}
}
