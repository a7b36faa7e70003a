package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"
	"akaraka_backend/pkg/logger"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertificateRepo *repository.CertificateRepository
	ProgressRepo    *repository.ProgressRepository
	LessonRepo      *repository.LessonRepository
	CourseRepo      *repository.CourseRepository
	UserRepo        *repository.UserRepository
	Storage         StorageProvider
}

func NewCertificateService(
	certificateRepo *repository.CertificateRepository,
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	storage StorageProvider,
) *CertificateService {
	return &CertificateService{
		CertificateRepo: certificateRepo,
		ProgressRepo:    progressRepo,
		LessonRepo:      lessonRepo,
		CourseRepo:      courseRepo,
		UserRepo:        userRepo,
		Storage:         storage,
	}
}

// CourseIDBySlug resolves a course slug for certificate issuance.
func (s *CertificateService) CourseIDBySlug(slug string) (uint, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrCourseNotFound
	}
	if err != nil {
		return 0, err
	}
	return course.ID, nil
}

// Issue creates the certificate for a completed course. Every lesson must be
// completed; otherwise ErrCourseNotCompleted. Issuing twice returns the
// existing certificate.
func (s *CertificateService) Issue(ctx context.Context, userID, courseID uint) (*model.Certificate, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompletedInCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if total == 0 || completed < total {
		return nil, util.ErrCourseNotCompleted
	}

	if existing, err := s.CertificateRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	cert := &model.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: fmt.Sprintf("AKR-%d-%s", courseID, strings.ToUpper(model.GenerateUUID()[:8])),
		VerificationCode:  strings.ReplaceAll(model.GenerateUUID(), "-", ""),
		Score:             100,
		IssueDate:         time.Now(),
	}
	if err := s.CertificateRepo.Create(cert); err != nil {
		return nil, err
	}

	pdf, err := renderCertificatePDF(cert, user, course)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("certificates/%s.pdf", cert.CertificateNumber)
	if _, err := s.Storage.Upload(ctx, name, bytes.NewReader(pdf), int64(len(pdf)), "application/pdf"); err != nil {
		return nil, err
	}
	cert.PDFFile = name
	if err := s.CertificateRepo.Update(cert); err != nil {
		return nil, err
	}

	logger.Log.Info("certificate issued",
		zap.Uint("userId", userID),
		zap.Uint("courseId", courseID),
		zap.String("number", cert.CertificateNumber),
	)
	return cert, nil
}

// renderCertificatePDF draws a landscape A4 completion certificate.
func renderCertificatePDF(cert *model.Certificate, user *model.User, course *model.Course) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	w, h := pdf.GetPageSize()

	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(27, 94, 32)
	pdf.Rect(8, 8, w-16, h-16, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(27, 94, 32)
	pdf.SetY(35)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(8)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, user.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, course.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Issued on %s", cert.IssueDate.Format("January 2, 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Certificate No. %s", cert.CertificateNumber), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetY(h - 25)
	pdf.CellFormat(0, 6, fmt.Sprintf("Verify at akaraka.org/verify/%s", cert.VerificationCode), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Verify resolves a certificate by its public verification code.
func (s *CertificateService) Verify(code string) (*model.Certificate, error) {
	cert, err := s.CertificateRepo.FindByVerificationCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCertificateNotFound
	}
	return cert, err
}

func (s *CertificateService) ListMine(userID uint) ([]model.Certificate, error) {
	return s.CertificateRepo.ListByUser(userID)
}

// Download streams the stored PDF; only the owner may download.
func (s *CertificateService) Download(ctx context.Context, certID, userID uint) ([]byte, string, error) {
	cert, err := s.CertificateRepo.FindByID(certID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrCertificateNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if cert.UserID != userID {
		return nil, "", util.ErrPermissionDenied
	}

	reader, err := s.Storage.Open(ctx, cert.PDFFile)
	if err != nil {
		return nil, "", err
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), cert.CertificateNumber + ".pdf", nil
}
