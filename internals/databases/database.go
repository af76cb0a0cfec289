package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	attendancemodel "acadattend_backend/internals/features/academics/attendance/model"
	auditmodel "acadattend_backend/internals/features/academics/audit/model"
	classmodel "acadattend_backend/internals/features/academics/classes/model"
	studentmodel "acadattend_backend/internals/features/academics/students/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=acadattend&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		// Unique-index races must surface as gorm.ErrDuplicatedKey so the
		// ledger can convert insert losers into updates.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}
	DB = db
	log.Println("DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync. The unique indexes declared on the
// models are the source of the store-level invariants (one ledger entry
// per owner+class+date, one alive class group per composite key).
func Migrate() {
	if err := DB.AutoMigrate(
		&studentmodel.StudentModel{},
		&studentmodel.SemesterEnrollmentModel{},
		&classmodel.ClassGroupModel{},
		&attendancemodel.AttendanceLedgerEntryModel{},
		&auditmodel.AuditLogEntryModel{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
