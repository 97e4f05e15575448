package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	onbdto "sekolahku_backend/internals/features/school/onboarding/dto"
	onbmodel "sekolahku_backend/internals/features/school/onboarding/model"
	stumodel "sekolahku_backend/internals/features/school/students/model"
	usermodel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/mailer"
)

const (
	// budget persistence untuk SEMUA query satu baris — baris yang nyangkut
	// di DB jadi RowError, bukan menggantung batch
	rowTimeout = 15 * time.Second

	// checkpoint progress tiap N baris supaya poller lihat kemajuan,
	// bukan cuma hasil akhir
	checkpointEvery = 10
)

// NowFunc mockable di test
var NowFunc = time.Now

/* ==========================
   Service
========================== */

type BulkImportService struct {
	Repo Repository
	Mail mailer.Mailer
	Cfg  configs.OnboardingConfig
}

func NewBulkImportService(repo Repository, mail mailer.Mailer, cfg configs.OnboardingConfig) *BulkImportService {
	return &BulkImportService{Repo: repo, Mail: mail, Cfg: cfg}
}

// rowResult: artefak sukses satu baris (kredensial untuk laporan).
type rowResult struct {
	StudentNumber   string
	StudentPassword string
	ParentPassword  string // kosong kalau orang tua sudah punya akun
	ParentEmail     string
}

/* ==========================
   Batch orchestrator
========================== */

// StartBulkImport membuat row batch (pending) lalu langsung return;
// pemrosesan baris jalan di goroutine terpisah.
func (s *BulkImportService) StartBulkImport(ctx context.Context, schoolID, submitterID uuid.UUID, req onbdto.BulkImportRequest) (*onbmodel.StudentImportBatchModel, error) {
	emptyLog, err := onbmodel.MarshalImportLog(nil)
	if err != nil {
		return nil, err
	}

	batch := &onbmodel.StudentImportBatchModel{
		StudentImportBatchSchoolID:        schoolID,
		StudentImportBatchSubmitterUserID: submitterID,
		StudentImportBatchTotalRecords:    len(req.Students),
		StudentImportBatchStatus:          onbmodel.ImportBatchPending,
		StudentImportBatchResultLog:       emptyLog,
	}
	if err := s.Repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}

	// detached: batch hidup lebih lama dari request yang men-trigger
	go s.runBatch(context.Background(), batch, schoolID, req)

	return batch, nil
}

// GetProgress: dibaca poller eksternal.
func (s *BulkImportService) GetProgress(ctx context.Context, schoolID, batchID uuid.UUID) (*onbmodel.StudentImportBatchModel, error) {
	return s.Repo.GetBatch(ctx, schoolID, batchID)
}

func (s *BulkImportService) runBatch(ctx context.Context, batch *onbmodel.StudentImportBatchModel, schoolID uuid.UUID, req onbdto.BulkImportRequest) {
	batchID := batch.StudentImportBatchID
	log.Printf("[BULK-IMPORT] batch=%s mulai, total=%d", batchID, len(req.Students))

	batch.StudentImportBatchStatus = onbmodel.ImportBatchProcessing
	if err := s.Repo.UpdateBatchProgress(ctx, batch); err != nil {
		s.markBatchFailed(ctx, batch, err)
		return
	}

	// katalog placement dimuat sekali per batch — baris diproses sekuensial
	catalog, err := s.Repo.ActivePlacements(ctx, schoolID)
	if err != nil {
		s.markBatchFailed(ctx, batch, err)
		return
	}

	academicYear := strings.TrimSpace(req.AcademicYear)
	if academicYear == "" {
		y := NowFunc().Year()
		academicYear = fmt.Sprintf("%d/%d", y, y+1)
	}

	entries := make([]onbmodel.ImportLogEntry, 0, len(req.Students))
	for i, row := range req.Students {
		rowNum := i + 1

		res, rowErr := s.processRecordSafe(ctx, batchID, schoolID, catalog, academicYear, req, row, rowNum)
		if rowErr != nil {
			batch.StudentImportBatchFailedRecords++
			entries = append(entries, onbmodel.ImportLogEntry{
				Kind:       onbmodel.ImportLogFailure,
				Row:        rowNum,
				Identifier: rowErr.Identifier,
				Reason:     string(rowErr.Class),
				Error:      rowErr.Err.Error(),
			})
			log.Printf("[BULK-IMPORT] batch=%s row=%d GAGAL (%s): %v", batchID, rowNum, rowErr.Class, rowErr.Err)
		} else {
			batch.StudentImportBatchSuccessfulRecords++
			entries = append(entries, onbmodel.ImportLogEntry{
				Kind:            onbmodel.ImportLogSuccess,
				Row:             rowNum,
				StudentName:     row.FullName,
				StudentEmail:    NormalizeEmail(row.Email),
				StudentNumber:   res.StudentNumber,
				StudentPassword: res.StudentPassword,
				ParentEmail:     res.ParentEmail,
				ParentPassword:  res.ParentPassword,
			})
		}

		// checkpoint tiap N baris atau di akhir
		if rowNum%checkpointEvery == 0 || rowNum == len(req.Students) {
			if err := s.checkpoint(ctx, batch, entries); err != nil {
				// kegagalan di luar boundary per-row → batch FAILED,
				// baris yang sudah commit dibiarkan (tanpa rollback)
				s.markBatchFailed(ctx, batch, err)
				return
			}
		}
	}

	now := NowFunc().UTC()
	batch.StudentImportBatchStatus = onbmodel.ImportBatchCompleted
	batch.StudentImportBatchCompletedAt = &now
	if err := s.checkpoint(ctx, batch, entries); err != nil {
		s.markBatchFailed(ctx, batch, err)
		return
	}

	log.Printf("[BULK-IMPORT] batch=%s selesai: ok=%d gagal=%d", batchID,
		batch.StudentImportBatchSuccessfulRecords, batch.StudentImportBatchFailedRecords)
}

func (s *BulkImportService) checkpoint(ctx context.Context, batch *onbmodel.StudentImportBatchModel, entries []onbmodel.ImportLogEntry) error {
	raw, err := onbmodel.MarshalImportLog(entries)
	if err != nil {
		return err
	}
	batch.StudentImportBatchResultLog = raw
	return s.Repo.UpdateBatchProgress(ctx, batch)
}

func (s *BulkImportService) markBatchFailed(ctx context.Context, batch *onbmodel.StudentImportBatchModel, cause error) {
	log.Printf("[BULK-IMPORT] batch=%s FAILED: %v", batch.StudentImportBatchID, cause)
	now := NowFunc().UTC()
	batch.StudentImportBatchStatus = onbmodel.ImportBatchFailed
	batch.StudentImportBatchCompletedAt = &now
	if err := s.Repo.UpdateBatchProgress(ctx, batch); err != nil {
		log.Printf("[BULK-IMPORT] batch=%s gagal menulis status failed: %v", batch.StudentImportBatchID, err)
	}
}

/* ==========================
   Record processor
========================== */

// processRecordSafe: boundary per-row. Panic pun tidak boleh merusak
// baris lain — ditangkap dan dicatat sebagai RowError.
func (s *BulkImportService) processRecordSafe(ctx context.Context, batchID, schoolID uuid.UUID, catalog []LevelClasses, academicYear string, req onbdto.BulkImportRequest, row onbdto.StudentImportRow, rowNum int) (res *rowResult, rowErr *RowError) {
	defer func() {
		if r := recover(); r != nil {
			rowErr = newRowError(RowErrUnknown, rowNum, row.FullName, fmt.Errorf("panic: %v", r))
		}
	}()
	return s.processRecord(ctx, batchID, schoolID, catalog, academicYear, req, row, rowNum)
}

func (s *BulkImportService) processRecord(ctx context.Context, batchID, schoolID uuid.UUID, catalog []LevelClasses, academicYear string, req onbdto.BulkImportRequest, row onbdto.StudentImportRow, rowNum int) (*rowResult, *RowError) {
	ident := strings.TrimSpace(row.FullName)
	if ident == "" {
		ident = strings.TrimSpace(row.Email)
	}

	// 1) validasi baris
	dob, err := row.Validate()
	if err != nil {
		return nil, newRowError(RowErrValidation, rowNum, ident, err)
	}

	// satu deadline untuk seluruh persistence baris ini
	qctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	// 2) nomor induk: per sekolah per tahun kalender, monoton (boleh bolong)
	year := NowFunc().Year()
	count, err := s.Repo.CountStudentsInCalendarYear(qctx, schoolID, year)
	if err != nil {
		return nil, newRowError(RowErrUnknown, rowNum, ident, fmt.Errorf("generate student number: %w", err))
	}
	studentNumber := fmt.Sprintf("%d-%04d", year, count+1)

	// 3) resolve / create identitas orang tua
	parent, err := s.resolveOrCreateParent(qctx, row.ParentFullName, row.ParentEmail, row.ParentPhone)
	if err != nil {
		if errors.Is(err, ErrParentProfile) {
			return nil, newRowError(RowErrIntegrity, rowNum, ident, err)
		}
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}

	// 4) identitas siswa — selalu baru; email bentrok = baris gagal keras
	studentPassword := GenerateStudentPassword(s.Cfg)
	hash, err := bcrypt.GenerateFromPassword([]byte(studentPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}
	studentUser := &usermodel.UserModel{
		FullName: row.FullName,
		Email:    NormalizeEmail(row.Email),
		Password: string(hash),
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	if err := s.Repo.CreateUser(qctx, studentUser); err != nil {
		if isUniqueViolation(err) {
			return nil, newRowError(RowErrDuplicate, rowNum, ident,
				fmt.Errorf("email siswa %s sudah terdaftar", studentUser.Email))
		}
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}

	// 5) placement — chain fallback, tidak pernah gagal karena hint ambigu
	level, class, err := ResolvePlacement(catalog, req.LevelHint, req.ClassHint)
	if err != nil {
		return nil, newRowError(RowErrPlacement, rowNum, ident, err)
	}

	// 6) persist siswa + kontak wali denormalized (fallback darurat)
	var guardianPhone *string
	if p := strings.TrimSpace(row.ParentPhone); p != "" {
		guardianPhone = &p
	}
	var studentPhone *string
	if p := strings.TrimSpace(row.Phone); p != "" {
		studentPhone = &p
	}
	student := &stumodel.SchoolStudentModel{
		SchoolStudentSchoolID:           schoolID,
		SchoolStudentUserID:             studentUser.ID,
		SchoolStudentLevelID:            level.LevelID,
		SchoolStudentClassID:            class.ClassID,
		SchoolStudentNumber:             studentNumber,
		SchoolStudentAcademicYear:       academicYear,
		SchoolStudentGender:             row.Gender,
		SchoolStudentDateOfBirth:        dob,
		SchoolStudentPhone:              studentPhone,
		SchoolStudentGuardianNameCache:  row.ParentFullName,
		SchoolStudentGuardianEmailCache: NormalizeEmail(row.ParentEmail),
		SchoolStudentGuardianPhoneCache: guardianPhone,
	}
	if err := s.Repo.CreateStudent(qctx, student); err != nil {
		if isForeignKeyViolation(err) {
			return nil, newRowError(RowErrIntegrity, rowNum, ident, err)
		}
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}

	// 7) relasi orang tua ↔ sekolah dengan kode verifikasi segar
	code := GenerateVerificationCode()
	ps := &onbmodel.ParentSchoolModel{
		ParentSchoolSchoolID:         schoolID,
		ParentSchoolParentUserID:     parent.User.ID,
		ParentSchoolParentEmailCache: parent.User.Email,
		ParentSchoolParentNameCache:  parent.User.FullName,
		ParentSchoolVerificationCode: code,
		ParentSchoolCodeExpiresAt:    NowFunc().UTC().Add(s.Cfg.VerificationTTL),
	}
	if err := s.Repo.CreateParentSchool(qctx, ps); err != nil {
		// profil/identitas orang tua hilang di antara step 3 dan sini —
		// klasifikasi integrity, pesan asli diteruskan utuh ke log operator
		if isForeignKeyViolation(err) {
			return nil, newRowError(RowErrIntegrity, rowNum, ident, err)
		}
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}
	if err := s.Repo.SetStudentParentSchool(qctx, student.SchoolStudentID, ps.ParentSchoolID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, newRowError(RowErrIntegrity, rowNum, ident, err)
		}
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}

	// link batch → siswa (audit per baris sukses)
	rec := &onbmodel.StudentImportRecordModel{
		StudentImportRecordBatchID:         batchID,
		StudentImportRecordSchoolStudentID: student.SchoolStudentID,
		StudentImportRecordRowNumber:       rowNum,
	}
	if err := s.Repo.CreateImportRecord(qctx, rec); err != nil {
		return nil, newRowError(RowErrUnknown, rowNum, ident, err)
	}

	// 8) notifikasi — fire-and-log, baris sudah durable; kegagalan kirim
	// TIDAK menggagalkan baris
	s.dispatchNotifications(row, parent, studentUser.Email, studentPassword, code)

	return &rowResult{
		StudentNumber:   studentNumber,
		StudentPassword: studentPassword,
		ParentPassword:  parent.Password,
		ParentEmail:     parent.User.Email,
	}, nil
}

func (s *BulkImportService) dispatchNotifications(row onbdto.StudentImportRow, parent ResolvedParent, studentEmail, studentPassword, code string) {
	schoolName := s.Cfg.SchoolDisplayName
	parentEmail := parent.User.Email
	parentName := parent.User.FullName
	parentPassword := parent.Password
	studentName := row.FullName

	go func() {
		if err := s.Mail.SendStudentWelcome(studentEmail, studentName, studentEmail, studentPassword, schoolName); err != nil {
			log.Printf("[BULK-IMPORT] welcome siswa %s gagal kirim: %v", studentEmail, err)
		}
		if parentPassword != "" {
			if err := s.Mail.SendParentWelcome(parentEmail, parentName, parentEmail, parentPassword); err != nil {
				log.Printf("[BULK-IMPORT] welcome orang tua %s gagal kirim: %v", parentEmail, err)
			}
		}
		if err := s.Mail.SendParentInvitation(parentEmail, parentName, studentName, code); err != nil {
			log.Printf("[BULK-IMPORT] undangan verifikasi %s gagal kirim: %v", parentEmail, err)
		}
	}()
}
