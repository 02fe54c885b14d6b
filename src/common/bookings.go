package common

import (
	"castbook/src/db"
	"castbook/src/lib"
	"castbook/src/models"
	"castbook/src/types"
	"castbook/src/utils"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateBooking(params *types.CreateBookingRequestBody, creatorID uint, clientID uint) (*models.Booking, error) {
	startsAt, err := utils.ParseDateTime(params.StartsAt)
	if err != nil {
		log.Printf("Error parsing starts_at: %s\n", err.Error())
		return nil, err
	}
	endsAt, err := utils.ParseDateTime(params.EndsAt)
	if err != nil {
		log.Printf("Error parsing ends_at: %s\n", err.Error())
		return nil, err
	}
	rate, err := utils.ParseRate(params.Rate)
	if err != nil {
		return nil, err
	}

	category := params.Category
	if category == "" {
		category = string(types.CATEGORY_GENERAL)
	}
	booking := models.Booking{
		Title:        params.Title,
		Category:     category,
		Location:     params.Location,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Rate:         rate,
		Status:       types.BOOKING_INQUIRY,
		Notes:        params.Notes,
		Deliverables: params.Deliverables,
		UsageRights:  params.UsageRights,
		CreatedBy:    creatorID,
		ClientID:     clientID,
	}

	database := db.GetDb()
	// The loser of a concurrent create hits the unique index on code;
	// retry with a freshly counted sequence number.
	for attempt := 0; attempt < 3; attempt++ {
		err = database.Transaction(func(tx *gorm.DB) error {
			code, err := utils.NextBookingCode(tx, time.Now())
			if err != nil {
				return err
			}
			booking.Code = code
			return tx.Create(&booking).Error
		})
		if err == nil {
			return &booking, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			log.Printf("Booking code %s already taken, retrying\n", booking.Code)
			continue
		}
		break
	}
	return nil, err
}

// UpdateBooking applies field changes and, when a status change is requested,
// validates it against the lifecycle transition table. Invalid transitions
// are rejected with no partial update.
func UpdateBooking(id uint, params *types.UpdateBookingRequestBody) (*models.Booking, error) {
	var booking models.Booking
	var invoice bool
	database := db.GetDb()
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id}).
			First(&booking).
			Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if params.Title != nil {
			updates["title"] = *params.Title
		}
		if params.Location != nil {
			updates["location"] = *params.Location
		}
		if params.StartsAt != nil {
			startsAt, err := utils.ParseDateTime(*params.StartsAt)
			if err != nil {
				return err
			}
			updates["starts_at"] = startsAt
		}
		if params.EndsAt != nil {
			endsAt, err := utils.ParseDateTime(*params.EndsAt)
			if err != nil {
				return err
			}
			updates["ends_at"] = endsAt
		}
		if params.Rate != nil {
			rate, err := utils.ParseRate(params.Rate)
			if err != nil {
				return err
			}
			updates["rate"] = rate
		}
		if params.Notes != nil {
			updates["notes"] = *params.Notes
		}
		if params.Deliverables != nil {
			updates["deliverables"] = *params.Deliverables
		}
		if params.UsageRights != nil {
			updates["usage_rights"] = *params.UsageRights
		}

		if params.Status != nil {
			newStatus := types.BookingStatus(*params.Status)
			if !booking.Status.CanTransition(newStatus) {
				return ErrInvalidTransition
			}
			updates["status"] = newStatus
			invoice = newStatus == types.BOOKING_INVOICED
		}
		if len(updates) == 0 {
			return nil
		}

		// Guard against a concurrent status change between read and write.
		res := tx.
			Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id}).
			Preload("Client").
			First(&booking).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if params.Status != nil {
		go NotifyBookingStatus(&booking)
	}
	if invoice {
		go invoiceBooking(&booking)
	}
	return &booking, nil
}

// UpdateBookingStatus is the status-only variant used by the cancel endpoint.
func UpdateBookingStatus(id uint, newStatus types.BookingStatus) (*models.Booking, error) {
	s := string(newStatus)
	return UpdateBooking(id, &types.UpdateBookingRequestBody{Status: &s})
}

func invoiceBooking(booking *models.Booking) {
	if booking.Rate == nil {
		log.Printf("Booking [%s] has no rate; skipping invoice\n", booking.Code)
		return
	}
	if booking.Client == nil || booking.Client.StripeCustomerId == nil {
		log.Printf("Booking [%s] client has no billing account; skipping invoice\n", booking.Code)
		return
	}
	inv, err := lib.CreateBookingInvoice(*booking.Client.StripeCustomerId, booking.Code, *booking.Rate, "usd")
	if err != nil {
		log.Printf("Error creating invoice for booking [%s]: %s\n", booking.Code, err.Error())
		return
	}
	log.Printf("Created invoice %s for booking [%s]\n", inv.ID, booking.Code)
}

// PartitionTalentIDs splits the requested talent set into ids that need a new
// request row and ids that already have one. Duplicate ids in the request are
// collapsed.
func PartitionTalentIDs(requested []uint, existing []uint) (toCreate []uint, skipped []uint) {
	seen := make(map[uint]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	requestedOnce := make(map[uint]bool, len(requested))
	for _, id := range requested {
		if requestedOnce[id] {
			continue
		}
		requestedOnce[id] = true
		if seen[id] {
			skipped = append(skipped, id)
			continue
		}
		toCreate = append(toCreate, id)
	}
	return toCreate, skipped
}

// SendTalentRequests fans out one pending BookingTalent row per talent.
// Talents that already hold a row for the booking are skipped, so repeated
// calls with overlapping talent sets are idempotent. The unique index on
// (booking_id, talent_id) backs this under concurrent fan-out.
func SendTalentRequests(bookingID uint, talentIDs []uint) (created []uint, skipped []uint, err error) {
	var booking models.Booking
	database := db.GetDb()
	err = database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error; err != nil {
			return err
		}
		if booking.Status.Terminal() {
			return ErrBookingTerminal
		}

		var talentCount int64
		if err := tx.
			Model(&models.User{}).
			Where("id IN (?) AND role = ?", talentIDs, string(types.ROLE_TALENT)).
			Count(&talentCount).
			Error; err != nil {
			return err
		}
		if talentCount != int64(len(uniqueIDs(talentIDs))) {
			return gorm.ErrRecordNotFound
		}

		var existing []uint
		if err := tx.
			Model(&models.BookingTalent{}).
			Where("booking_id = ?", bookingID).
			Pluck("talent_id", &existing).
			Error; err != nil {
			return err
		}

		toCreate, skip := PartitionTalentIDs(talentIDs, existing)
		skipped = skip
		for _, talentID := range toCreate {
			row := models.BookingTalent{
				BookingID:     bookingID,
				TalentID:      talentID,
				RequestStatus: types.REQUEST_PENDING,
			}
			// DoNothing defers to the unique index when another fan-out won
			// the race; RowsAffected tells us whether this call wrote the row.
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				skipped = append(skipped, talentID)
				continue
			}
			created = append(created, talentID)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(created) > 0 {
		go NotifyTalentRequests(&booking, created)
	}
	return created, skipped, nil
}

// RespondToRequest records a talent's one-shot response. Only the targeted
// talent may respond, and only while the request is still pending.
func RespondToRequest(bookingTalentID uint, talentID uint, status types.RequestStatus, message string) (*models.BookingTalent, error) {
	if status != types.REQUEST_ACCEPTED && status != types.REQUEST_DECLINED {
		return nil, fmt.Errorf("invalid response status: %s", status)
	}
	var link models.BookingTalent
	database := db.GetDb()
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.BookingTalent{}).
			Where(&models.BookingTalent{ID: bookingTalentID}).
			First(&link).
			Error; err != nil {
			return err
		}
		if link.TalentID != talentID {
			return ErrForbidden
		}
		// Compare-and-swap on the pending state; a second response loses.
		res := tx.
			Model(&models.BookingTalent{}).
			Where("id = ? AND request_status = ?", bookingTalentID, types.REQUEST_PENDING).
			Updates(map[string]any{
				"request_status":   status,
				"response_message": strings.TrimSpace(message),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}
		if err := tx.
			Model(&models.BookingTalent{}).
			Where(&models.BookingTalent{ID: bookingTalentID}).
			Preload("Booking").
			Preload("Talent").
			First(&link).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go NotifyTalentResponse(&link)
	return &link, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
