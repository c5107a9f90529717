package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the PostgreSQL pool, verifies connectivity and
// bootstraps the schema.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initTables(db); err != nil {
		return nil, fmt.Errorf("init tables: %w", err)
	}
	return db, nil
}

// initTables creates the schema if it doesn't exist.
func initTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bmi_records (
			id BIGSERIAL PRIMARY KEY,
			patient_id BIGINT NOT NULL REFERENCES users(id),
			age INTEGER,
			gender VARCHAR(50),
			height DOUBLE PRECISION NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			bmi DOUBLE PRECISION NOT NULL,
			category VARCHAR(20) NOT NULL,
			date TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS invoices (
			id BIGSERIAL PRIMARY KEY,
			invoice_number VARCHAR(64) NOT NULL UNIQUE,
			patient_id BIGINT NOT NULL REFERENCES users(id),
			record_id BIGINT NOT NULL REFERENCES bmi_records(id),
			consultation_fee DOUBLE PRECISION NOT NULL,
			bmi_assessment_fee DOUBLE PRECISION NOT NULL,
			health_report_fee DOUBLE PRECISION NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			payment_status VARCHAR(20) NOT NULL DEFAULT 'Pending',
			payment_terms VARCHAR(100) NOT NULL DEFAULT 'Due within 30 days',
			invoice_date TIMESTAMP NOT NULL DEFAULT NOW(),
			due_date TIMESTAMP
		)`,

		// Reserved schema: no issuing or consuming routes exist yet.
		`CREATE TABLE IF NOT EXISTS password_reset_tokens (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			token VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMP NOT NULL,
			used BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_bmi_records_patient_id ON bmi_records(patient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bmi_records_date ON bmi_records(date)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_patient_id ON invoices(patient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_record_id ON invoices(record_id)`,
		`CREATE INDEX IF NOT EXISTS idx_password_reset_tokens_token ON password_reset_tokens(token)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
