package db

import "database/sql"

func Migrate(db *sql.DB) {
	db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		chips INTEGER NOT NULL DEFAULT 0,
		coins INTEGER NOT NULL DEFAULT 0,
		shadowbanned INTEGER NOT NULL DEFAULT 0,
		booster_expires_at INTEGER,
		nonce INTEGER NOT NULL DEFAULT 0
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS ad_watch_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		watched_at INTEGER NOT NULL
	);`)

	db.Exec(`
	CREATE INDEX IF NOT EXISTS idx_watch_logs_user_ts
	ON ad_watch_logs(user_id, watched_at DESC);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS weekly_tickets (
		user_id TEXT NOT NULL,
		week_id TEXT NOT NULL,
		organic REAL NOT NULL DEFAULT 0,
		converted INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, week_id)
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS weekly_prize_pool (
		week_id TEXT PRIMARY KEY,
		base_amount INTEGER NOT NULL DEFAULT 1250000,
		ad_revenue_added INTEGER NOT NULL DEFAULT 0
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS blackjack_sessions (
		user_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		bet INTEGER NOT NULL,
		player_hand TEXT NOT NULL,
		dealer_hand TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress',
		created_at INTEGER NOT NULL
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ref TEXT,
		user_id TEXT,
		kind TEXT,
		debit INTEGER,
		credit INTEGER,
		ts INTEGER
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT,
		action TEXT,
		metadata TEXT,
		created_at INTEGER
	);`)
}
