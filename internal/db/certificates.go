package db

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

const serialCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// newCertificateNumber builds a VREVIA-<year>-<6 base36 chars> serial.
func newCertificateNumber(year int) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = serialCharset[int(b)%len(serialCharset)]
	}
	return fmt.Sprintf("VREVIA-%d-%s", year, buf), nil
}

// IssueCertificate creates the (student, level) certificate. A second issue
// for the same pair fails with ErrDuplicateRecord and leaves the first
// untouched. Serial collisions are retried under the unique index.
func IssueCertificate(ctx context.Context, studentID uint, level, issuedBy string) (*models.Certificate, error) {
	now := time.Now().UTC()
	for attempt := 0; attempt < 3; attempt++ {
		number, err := newCertificateNumber(now.Year())
		if err != nil {
			return nil, err
		}
		cert := models.Certificate{
			StudentID: studentID,
			Level:     level,
			Number:    number,
			IssuedBy:  issuedBy,
			IssuedAt:  now,
		}
		err = DB.WithContext(ctx).Create(&cert).Error
		if err == nil {
			return &cert, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Either the pair already holds a certificate or the serial
		// collided; only the latter is retryable.
		var existing models.Certificate
		pairErr := DB.WithContext(ctx).
			Where("student_id = ? AND level = ?", studentID, level).
			First(&existing).Error
		if pairErr == nil {
			return nil, ErrDuplicateRecord
		}
		if !errors.Is(pairErr, gorm.ErrRecordNotFound) {
			return nil, pairErr
		}
	}
	return nil, errors.New("could not allocate certificate number")
}

func GetCertificate(ctx context.Context, id uint) (*models.Certificate, error) {
	var c models.Certificate
	if err := DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func ListCertificates(ctx context.Context, studentID uint) ([]models.Certificate, error) {
	var certs []models.Certificate
	tx := DB.WithContext(ctx).Order("issued_at")
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

// DeleteCertificate is unconditional once authorized.
func DeleteCertificate(ctx context.Context, id uint) error {
	return DB.WithContext(ctx).Delete(&models.Certificate{}, id).Error
}
