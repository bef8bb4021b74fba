package sqlc

import (
	"database/sql"
	"time"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(db *sql.DB) DbManager {
	return DbManager{
		Analytics: NewAnalyticsManager(New(db)),
	}
}
