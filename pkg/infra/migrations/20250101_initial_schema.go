package migrations

import (
	"github.com/NeuralTrust/BotTracker/pkg/infra/database"
	"gorm.io/gorm"
)

// Tables: users, domains, api_keys, traffic_logs
func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250101_initial_schema",
		Name: "Create core tables: users, domains, api_keys, traffic_logs",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					email           TEXT NOT NULL,
					password_hash   TEXT NOT NULL,
					is_super_admin  BOOLEAN NOT NULL DEFAULT FALSE,
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS domains (
					id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id             UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					domain              TEXT NOT NULL,
					verification_token  TEXT NOT NULL,
					is_verified         BOOLEAN NOT NULL DEFAULT FALSE,
					verified_at         TIMESTAMPTZ,
					created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_domains_user_domain ON domains (user_id, domain);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS api_keys (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					key         TEXT NOT NULL,
					name        TEXT NOT NULL,
					is_active   BOOLEAN NOT NULL DEFAULT TRUE,
					expires_at  TIMESTAMPTZ,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_api_keys_key ON api_keys (key);
				CREATE INDEX IF NOT EXISTS idx_api_keys_user_id ON api_keys (user_id);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE TABLE IF NOT EXISTS traffic_logs (
					id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					domain_id         UUID NOT NULL REFERENCES domains(id) ON DELETE CASCADE,
					user_id           UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					ip_address        TEXT NOT NULL,
					user_agent        TEXT NOT NULL DEFAULT '',
					detected_bot      TEXT,
					bot_provider      TEXT,
					confidence_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
					risk_level        TEXT NOT NULL DEFAULT 'low',
					behavior_label    TEXT NOT NULL DEFAULT 'normal',
					fingerprint       TEXT,
					geo_location      JSONB,
					device            TEXT NOT NULL DEFAULT '',
					os                TEXT NOT NULL DEFAULT '',
					browser           TEXT NOT NULL DEFAULT '',
					request_path      TEXT NOT NULL DEFAULT '',
					request_method    TEXT NOT NULL DEFAULT '',
					timestamp         TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_traffic_logs_user_ts ON traffic_logs (user_id, timestamp DESC);
				CREATE INDEX IF NOT EXISTS idx_traffic_logs_domain_ts ON traffic_logs (domain_id, timestamp DESC);
				CREATE INDEX IF NOT EXISTS idx_traffic_logs_bot ON traffic_logs (user_id, timestamp) WHERE detected_bot IS NOT NULL;
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`
				DROP TABLE IF EXISTS traffic_logs;
				DROP TABLE IF EXISTS api_keys;
				DROP TABLE IF EXISTS domains;
				DROP TABLE IF EXISTS users;
			`).Error
		},
	})
}
