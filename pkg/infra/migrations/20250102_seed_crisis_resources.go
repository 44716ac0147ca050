package migrations

import (
	"github.com/NeuralTrust/SafeChat/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250102_seed_crisis_resources",
		Name: "Seed crisis resources and the crisis alerts toggle",

		Up: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				INSERT INTO crisis_resources (name, description, phone, text_line, url, language, region, topics, priority)
				VALUES
				('Find a Helpline', 'Free, confidential support from a crisis line in your country.',
					NULL, NULL, 'https://findahelpline.com', 'en', 'GLOBAL', '{suicide,crisis}', 0),
				('Emergency services', 'If you are in immediate danger, call your local emergency number.',
					NULL, NULL, NULL, 'en', 'GLOBAL', '{emergency}', 1),
				('988 Suicide & Crisis Lifeline', 'Call or text 988, available 24/7.',
					'988', '988', 'https://988lifeline.org', 'en', 'US', '{suicide,crisis}', 0),
				('Crisis Text Line', 'Text HOME to 741741 to reach a crisis counselor.',
					NULL, '741741', 'https://www.crisistextline.org', 'en', 'US', '{crisis}', 1),
				('Samaritans', 'Call 116 123 for free, any time.',
					'116 123', NULL, 'https://www.samaritans.org', 'en', 'GB', '{suicide,crisis}', 0),
				('Teléfono de la Esperanza', 'Atención en crisis las 24 horas.',
					'717 003 717', NULL, 'https://telefonodelaesperanza.org', 'es', 'ES', '{crisis}', 0),
				('Línea 024', 'Línea de atención a la conducta suicida, gratuita y confidencial.',
					'024', NULL, NULL, 'es', 'ES', '{suicide}', 1);
			`).Error; err != nil {
				return err
			}
			return tx.Exec(`
				INSERT INTO feature_toggles (name, enabled) VALUES ('crisis_alerts_enabled', TRUE)
				ON CONFLICT (name) DO NOTHING;
			`).Error
		},

		Down: func(tx *gorm.DB) error {
			return tx.Exec(`
				DELETE FROM feature_toggles WHERE name = 'crisis_alerts_enabled';
				DELETE FROM crisis_resources;
			`).Error
		},
	})
}
