package jobs

import (
	"context"
	"time"

	"fleetride-backend/internal/logger"
)

type reminderRow struct {
	BookingID   int64
	BookingCode string
	CustomerID  int64
	Date        string
}

// SendPickupReminders mails customers whose CONFIRMED booking starts
// tomorrow.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

		query := `SELECT id, booking_code, customer_id, start_date::date
		          FROM bookings
		          WHERE status = 'CONFIRMED' AND start_date::date = $1`
		rows, err := jr.db.QueryContext(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to load pickup reminders", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var r reminderRow
			if err := rows.Scan(&r.BookingID, &r.BookingCode, &r.CustomerID, &r.Date); err != nil {
				logger.Error("Failed to scan pickup reminder", "error", err)
				continue
			}
			jr.remind(ctx, r, true)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pickup reminders", "error", err)
			return
		}
		logger.Info("Sent pickup reminders", "count", count)
	})
}

// SendReturnReminders mails customers whose IN_PROGRESS booking is past its
// end date. The booking stays IN_PROGRESS: overtime is settled at return,
// never by a background job.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		today := time.Now().Format("2006-01-02")

		query := `SELECT id, booking_code, customer_id, end_date::date
		          FROM bookings
		          WHERE status = 'IN_PROGRESS' AND end_date::date < $1`
		rows, err := jr.db.QueryContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to load return reminders", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var r reminderRow
			if err := rows.Scan(&r.BookingID, &r.BookingCode, &r.CustomerID, &r.Date); err != nil {
				logger.Error("Failed to scan return reminder", "error", err)
				continue
			}
			jr.remind(ctx, r, false)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating return reminders", "error", err)
			return
		}
		logger.Info("Sent return reminders", "count", count)
	})
}

func (jr *JobRunner) remind(ctx context.Context, r reminderRow, pickup bool) {
	user, err := jr.users.GetUser(ctx, r.CustomerID)
	if err != nil {
		logger.Warn("Failed to resolve customer for reminder", "booking_id", r.BookingID, "error", err)
		return
	}
	if pickup {
		err = jr.emailSvc.SendPickupReminder(ctx, user.Email, user.Name, r.BookingCode, r.Date)
	} else {
		err = jr.emailSvc.SendReturnReminder(ctx, user.Email, user.Name, r.BookingCode, r.Date)
	}
	if err != nil {
		logger.Warn("Failed to send reminder", "booking_id", r.BookingID, "error", err)
	}
}
