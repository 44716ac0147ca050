package migrations

import (
	"github.com/NeuralTrust/SafeChat/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250101_initial_schema",
		Name: "Create users, messages, crisis and notification tables",

		Up: func(tx *gorm.DB) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					email              TEXT NOT NULL UNIQUE,
					role               TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
					preferred_provider TEXT NOT NULL DEFAULT 'auto',
					language           TEXT NOT NULL DEFAULT 'en',
					region             TEXT NOT NULL DEFAULT 'GLOBAL',
					profile            JSONB,
					created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);`,

				`CREATE TABLE IF NOT EXISTS messages (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					conversation_id TEXT NOT NULL,
					user_id         TEXT NOT NULL,
					content         TEXT NOT NULL,
					is_from_user    BOOLEAN NOT NULL,
					risk_level      TEXT NOT NULL DEFAULT 'NONE',
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
				ON messages (conversation_id, created_at);`,

				`CREATE TABLE IF NOT EXISTS crisis_flags (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					conversation_id TEXT NOT NULL,
					user_id         TEXT NOT NULL,
					keyword         TEXT NOT NULL,
					risk_score      DOUBLE PRECISION CHECK (risk_score IS NULL OR (risk_score >= 0 AND risk_score <= 1)),
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (conversation_id, keyword)
				);`,
				`CREATE INDEX IF NOT EXISTS idx_crisis_flags_created ON crisis_flags (created_at DESC);`,

				`CREATE TABLE IF NOT EXISTS feature_toggles (
					name       TEXT PRIMARY KEY,
					enabled    BOOLEAN NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,

				`CREATE TABLE IF NOT EXISTS crisis_resources (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name        TEXT NOT NULL,
					description TEXT,
					phone       TEXT,
					text_line   TEXT,
					url         TEXT,
					language    TEXT NOT NULL,
					region      TEXT NOT NULL,
					topics      TEXT[],
					priority    INTEGER NOT NULL DEFAULT 0,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE INDEX IF NOT EXISTS idx_crisis_resources_locale
				ON crisis_resources (language, region, priority);`,

				`CREATE TABLE IF NOT EXISTS notifications (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					kind       TEXT NOT NULL,
					title      TEXT NOT NULL,
					body       TEXT NOT NULL,
					read       BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE INDEX IF NOT EXISTS idx_notifications_user_created
				ON notifications (user_id, created_at DESC);`,
			}
			for _, stmt := range statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},

		Down: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS notifications;
				DROP TABLE IF EXISTS crisis_resources;
				DROP TABLE IF EXISTS feature_toggles;
				DROP TABLE IF EXISTS crisis_flags;
				DROP TABLE IF EXISTS messages;
				DROP TABLE IF EXISTS users;
			`).Error
		},
	})
}
