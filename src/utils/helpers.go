package utils

import (
	"bytes"
	"castbook/src/config"
	"fmt"
	"log"
	"os"
	"time"

	"castbook/src/types"

	"github.com/go-pdf/fpdf"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"castbook/src/models"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NextBookingCode generates the next year-scoped booking code, e.g.
// BK-2024-0001. Two concurrent creations can count the same next number; the
// loser fails on the unique index on code and the caller retries with a fresh
// count.
func NextBookingCode(tx *gorm.DB, now time.Time) (string, error) {
	year := now.Year()
	var count int64
	prefix := fmt.Sprintf("%s-%d-", config.BOOKING_CODE_PREFIX, year)
	err := tx.
		Model(&models.Booking{}).
		Unscoped().
		Where("code LIKE ?", prefix+"%").
		Count(&count).
		Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// RenderContractPDF lays out the rendered contract text into a PDF document
// and returns its bytes.
func RenderContractPDF(title string, content string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, title, "", "C", false)
	pdf.Ln(4)
	pdf.SetFont("Courier", "", 10)
	pdf.MultiCell(0, 5, content, "", "L", false)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("Error rendering contract PDF: %s\n", err.Error())
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseRate(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid rate: %s", *s)
	}
	return &d, nil
}

func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(config.TIME_PARSE_FORMAT, s)
	if err != nil {
		return time.Time{}, err
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	return t, nil
}
