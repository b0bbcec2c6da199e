package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// runSlotTransaction runs txnFn inside a MongoDB multi-document transaction.
// Transient transaction errors (write conflicts between concurrent sessions)
// collapse into ErrSlotConflict so the caller can re-check and retry.
func (r *MongoBookingRepo) runSlotTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotConflict {
			return ErrSlotConflict
		}
		if cmdErr, ok := err.(mongo.CommandError); ok && cmdErr.HasErrorLabel("TransientTransactionError") {
			return ErrSlotConflict
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// CreateIfSlotFree atomically re-checks the mentor's window and inserts the
// booking. The overlap count and the insert share one transaction, so two
// concurrent creates for the same window cannot both succeed.
func (r *MongoBookingRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return r.runSlotTransaction(ctx, func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, overlapFilter(booking.MentorID, booking.ScheduledAt, booking.EndsAt))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotConflict
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

// RescheduleIfSlotFree atomically re-checks the booking's new window (the
// booking's own document is excluded from the overlap count) and replaces it.
func (r *MongoBookingRepo) RescheduleIfSlotFree(ctx context.Context, booking *models.Booking) error {
	booking.UpdatedAt = time.Now()

	return r.runSlotTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := overlapFilter(booking.MentorID, booking.ScheduledAt, booking.EndsAt)
		filter["id"] = bson.M{"$ne": booking.ID}

		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotConflict
		}

		res, err := r.coll.UpdateOne(sc, bson.M{"id": booking.ID}, bson.M{"$set": booking})
		if err != nil {
			return fmt.Errorf("reschedule update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking with id %s not found", booking.ID)
		}
		return nil
	})
}
