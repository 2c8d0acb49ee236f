package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema from the row models. On Postgres it also
// installs a partial unique index on the exact slot tuple: the transactional
// check-then-insert in CreateInSlot already serializes writers per turf, and
// the index is the storage-level backstop that makes identical-interval
// double inserts impossible even across processes that bypass the lock.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&turfModel{},
		&bookingModel{},
		&checkoutSessionModel{},
		&notificationModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON bookings (turf_id, booking_date, start_time, end_time)
WHERE payment_status <> 'cancelled'
`).Error
	}
	return nil
}
