package common

import (
	"castbook/src/db"
	awslib "castbook/src/lib/aws"
	"castbook/src/models"
	"castbook/src/templates"
	"castbook/src/types"
	"castbook/src/utils"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CreateContract renders the category template for an accepted booking-talent
// pair, produces the PDF artifact, and stores the draft row. Creation against
// a pending or declined request is rejected.
func CreateContract(params *types.CreateContractRequestBody, creatorID uint) (*models.Contract, error) {
	var dueDate *time.Time
	if params.DueDate != nil {
		parsed, err := utils.ParseDateTime(*params.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &parsed
	}

	var link models.BookingTalent
	database := db.GetDb()
	if err := database.
		Model(&models.BookingTalent{}).
		Where(&models.BookingTalent{ID: params.BookingTalentID, BookingID: params.BookingID}).
		Preload("Booking").
		Preload("Booking.Client").
		Preload("Talent").
		Preload("Talent.TalentProfile").
		First(&link).
		Error; err != nil {
		return nil, err
	}
	if link.RequestStatus != types.REQUEST_ACCEPTED {
		return nil, ErrTalentNotAccepted
	}

	booking := link.Booking
	title := params.Title
	if title == "" {
		title = fmt.Sprintf("Talent Booking Agreement %s", booking.Code)
	}
	content := templates.Render(contractData(booking, &link, title, dueDate))

	contract := models.Contract{
		ID:              uuid.New(),
		BookingID:       booking.ID,
		BookingTalentID: link.ID,
		Title:           title,
		Content:         content,
		Status:          types.CONTRACT_DRAFT,
		DueDate:         dueDate,
		CreatedBy:       creatorID,
	}

	pdfBytes, err := utils.RenderContractPDF(title, content)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("contracts/%s-%s.pdf", slug.Make(booking.Code), contract.ID.String())
	pdfURL, err := awslib.S3UploadDocument(key, pdfBytes, "application/pdf")
	if err != nil {
		return nil, err
	}
	contract.PdfKey = key
	contract.PdfURL = *pdfURL

	err = database.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&contract).Error
	})
	if err != nil {
		// The PDF is already in the bucket; drop it so a failed insert
		// leaves no orphan object behind.
		if derr := awslib.S3DeleteDocument(key); derr != nil {
			log.Printf("Orphaned contract PDF [%s] left in bucket: %s\n", key, derr.Error())
		}
		return nil, err
	}

	if dueDate != nil && dueDate.After(time.Now()) {
		scheduleContractReminder(&contract, &link)
	}
	return &contract, nil
}

// SendContract moves a draft contract to sent and opens the pending Signature
// for the talent. The status write is a compare-and-swap on draft, so a
// duplicate send loses cleanly.
func SendContract(contractID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	database := db.GetDb()
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Contract{}).
			Where("id = ?", contractID).
			Preload("BookingTalent").
			Preload("BookingTalent.Talent").
			First(&contract).
			Error; err != nil {
			return err
		}
		res := tx.
			Model(&models.Contract{}).
			Where("id = ? AND status = ?", contractID, types.CONTRACT_DRAFT).
			Update("status", types.CONTRACT_SENT)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		signature := models.Signature{
			ID:         uuid.New(),
			ContractID: contract.ID,
			SignerID:   contract.BookingTalent.TalentID,
			Status:     types.SIGNATURE_PENDING,
		}
		if err := tx.Create(&signature).Error; err != nil {
			return err
		}
		contract.Status = types.CONTRACT_SENT
		contract.Signatures = append(contract.Signatures, signature)
		return nil
	})
	if err != nil {
		return nil, err
	}

	go NotifyContractSent(&contract)
	return &contract, nil
}

// SignContract finalizes the Signature and the Contract in one transaction,
// capturing provenance at the moment of signing. Both writes are
// compare-and-swaps on the expected prior status, so double-signing and
// status regression are rejected and leave the records unchanged. Signing
// also advances the parent booking contract_sent -> signed.
func SignContract(contractID uuid.UUID, signerID uint, imageURL string, ipAddress string, userAgent string) (*models.Contract, error) {
	var contract models.Contract
	database := db.GetDb()
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Contract{}).
			Where("id = ?", contractID).
			Preload("Booking").
			Preload("Booking.Client").
			First(&contract).
			Error; err != nil {
			return err
		}
		var signature models.Signature
		if err := tx.
			Model(&models.Signature{}).
			Where(&models.Signature{ContractID: contractID, SignerID: signerID}).
			First(&signature).
			Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotSigner
			}
			return err
		}

		now := time.Now()
		res := tx.
			Model(&models.Signature{}).
			Where("id = ? AND status = ?", signature.ID, types.SIGNATURE_PENDING).
			Updates(map[string]any{
				"status":              types.SIGNATURE_SIGNED,
				"signature_image_url": imageURL,
				"ip_address":          ipAddress,
				"user_agent":          userAgent,
				"signed_at":           now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySigned
		}

		res = tx.
			Model(&models.Contract{}).
			Where("id = ? AND status = ?", contractID, types.CONTRACT_SENT).
			Update("status", types.CONTRACT_SIGNED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}

		// Event-driven coupling: a signed contract advances its booking.
		if contract.Booking != nil && contract.Booking.Status == types.BOOKING_CONTRACT_SENT {
			res = tx.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", contract.BookingID, types.BOOKING_CONTRACT_SENT).
				Update("status", types.BOOKING_SIGNED)
			if res.Error != nil {
				return res.Error
			}
		}

		contract.Status = types.CONTRACT_SIGNED
		return nil
	})
	if err != nil {
		return nil, err
	}

	go NotifyContractSigned(&contract)
	return &contract, nil
}

func contractData(booking *models.Booking, link *models.BookingTalent, title string, dueDate *time.Time) templates.ContractData {
	data := templates.ContractData{
		Code:         booking.Code,
		Title:        title,
		Category:     types.BookingCategory(booking.Category),
		Location:     booking.Location,
		StartsAt:     booking.StartsAt,
		EndsAt:       booking.EndsAt,
		Rate:         booking.Rate,
		Currency:     "usd",
		Deliverables: booking.Deliverables,
		UsageRights:  booking.UsageRights,
		DueDate:      dueDate,
	}
	if link.Talent != nil {
		data.TalentName = link.Talent.Name
		if link.Talent.TalentProfile != nil {
			data.TalentStageName = link.Talent.TalentProfile.StageName
		}
	}
	if booking.Client != nil {
		data.ClientName = booking.Client.Name
		data.ClientEmail = booking.Client.Email
	}
	return data
}

func scheduleContractReminder(contract *models.Contract, link *models.BookingTalent) {
	jobTask := models.JobTask{
		Name:    fmt.Sprintf("Contract_%s_DueDate", contract.ID.String()),
		JobType: "OneTimeJobStartDateTime",
		RunsAt:  *contract.DueDate,
		Payload: types.JSONB{
			"contract_id": contract.ID.String(),
			"talent_id":   int64(link.TalentID),
		},
		Source: "Contracts",
	}
	contractID := contract.ID
	id, err := jobTask.CreateAndEnqueueJobTask(jobTask, func() {
		SendContractReminder(contractID)
	})
	if err != nil {
		log.Printf("Error creating reminder job for Contract [%s]: %s\n", contract.ID.String(), err.Error())
		return
	}
	log.Printf("Created reminder job for Contract [%s] with ID %s\n", contract.ID.String(), id)
}

// SendContractReminder emails the talent when a contract reaches its due date
// still unsigned. Called by the scheduler; a signed contract is a no-op.
func SendContractReminder(contractID uuid.UUID) {
	database := db.GetDb()
	var contract models.Contract
	if err := database.
		Model(&models.Contract{}).
		Where("id = ?", contractID).
		Preload("BookingTalent").
		Preload("BookingTalent.Talent").
		Preload("Booking").
		First(&contract).
		Error; err != nil {
		log.Printf("Error loading contract [%s] for reminder: %s\n", contractID.String(), err.Error())
		return
	}
	if contract.Status == types.CONTRACT_SIGNED {
		return
	}
	NotifyContractReminder(&contract)
}
