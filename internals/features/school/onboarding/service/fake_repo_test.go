package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/configs"
	onbmodel "sekolahku_backend/internals/features/school/onboarding/model"
	stumodel "sekolahku_backend/internals/features/school/students/model"
	usermodel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/mailer"
)

// snapshot checkpoint — dipakai untuk cek monotonicity progress
type progressSnap struct {
	Status    onbmodel.ImportBatchStatus
	Succeeded int
	Failed    int
}

// fakeRepo: implementasi Repository in-memory untuk test.
// Email unik ditegakkan persis seperti constraint DB (pesan error
// meniru Postgres supaya isUniqueViolation kebaca).
type fakeRepo struct {
	mu sync.Mutex

	users         []*usermodel.UserModel
	profiles      map[uuid.UUID]*usermodel.UserProfileModel
	catalog       []LevelClasses
	students      []*stumodel.SchoolStudentModel
	relationships []*onbmodel.ParentSchoolModel
	batches       map[uuid.UUID]*onbmodel.StudentImportBatchModel
	records       []*onbmodel.StudentImportRecordModel

	checkpoints []progressSnap

	// fault injection
	failEnsureProfile        bool
	failCreateParentSchoolFK bool
	failSetParentSchoolFK    bool
	failUpdateAfterN         int // >0: UpdateBatchProgress ke-N+1 dst gagal
	updateCalls              int
	createUserConflicts      map[string]*usermodel.UserModel // email → user "milik batch lain"
	conflictVanishes         map[string]bool                 // email → conflict tapi pemenang tidak pernah muncul

	// ctx Deadline per method — cek semua query baris pakai timeout
	deadlineSeen map[string]bool
}

// noteDeadline dipanggil sambil pegang lock.
func (f *fakeRepo) noteDeadline(ctx context.Context, method string) {
	if f.deadlineSeen == nil {
		f.deadlineSeen = map[string]bool{}
	}
	_, ok := ctx.Deadline()
	f.deadlineSeen[method] = ok
}

func newFakeRepo(catalog []LevelClasses) *fakeRepo {
	return &fakeRepo{
		profiles: map[uuid.UUID]*usermodel.UserProfileModel{},
		batches:  map[uuid.UUID]*onbmodel.StudentImportBatchModel{},
		catalog:  catalog,
	}
}

func (f *fakeRepo) FindUserByEmailCI(ctx context.Context, email string) (*usermodel.UserModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "FindUserByEmailCI")
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateUser(ctx context.Context, u *usermodel.UserModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "CreateUser")

	// conflict yang pemenangnya tidak pernah muncul (insert+delete di batch lain)
	if f.conflictVanishes[strings.ToLower(u.Email)] {
		return errors.New(`duplicate key value violates unique constraint "uq_users_email"`)
	}

	// simulasi batch lain menang race: conflict disuntik sekali, lalu
	// user "mereka" muncul di tabel
	if winner, ok := f.createUserConflicts[strings.ToLower(u.Email)]; ok {
		delete(f.createUserConflicts, strings.ToLower(u.Email))
		f.users = append(f.users, winner)
		return errors.New(`duplicate key value violates unique constraint "uq_users_email"`)
	}

	for _, ex := range f.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return errors.New(`duplicate key value violates unique constraint "uq_users_email"`)
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeRepo) EnsureParentProfile(ctx context.Context, userID uuid.UUID, phone *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "EnsureParentProfile")
	if f.failEnsureProfile {
		return errors.New("insert user_profiles: connection reset")
	}
	if _, ok := f.profiles[userID]; !ok {
		f.profiles[userID] = &usermodel.UserProfileModel{
			UserProfileID:          uuid.New(),
			UserProfileUserID:      userID,
			UserProfilePhoneNumber: phone,
		}
	}
	return nil
}

func (f *fakeRepo) ActivePlacements(_ context.Context, _ uuid.UUID) ([]LevelClasses, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.catalog, nil
}

func (f *fakeRepo) CountStudentsInCalendarYear(ctx context.Context, schoolID uuid.UUID, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "CountStudentsInCalendarYear")
	var n int64
	for _, s := range f.students {
		if s.SchoolStudentSchoolID == schoolID && s.SchoolStudentCreatedAt.Year() == year {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateStudent(ctx context.Context, s *stumodel.SchoolStudentModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "CreateStudent")
	s.SchoolStudentID = uuid.New()
	s.SchoolStudentCreatedAt = time.Now().UTC()
	cp := *s
	f.students = append(f.students, &cp)
	return nil
}

func (f *fakeRepo) SetStudentParentSchool(ctx context.Context, studentID, parentSchoolID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "SetStudentParentSchool")
	if f.failSetParentSchoolFK {
		return errors.New(`insert or update on table "school_students" violates foreign key constraint "fk_school_students_parent_school"`)
	}
	for _, s := range f.students {
		if s.SchoolStudentID == studentID {
			ps := parentSchoolID
			s.SchoolStudentParentSchoolID = &ps
			return nil
		}
	}
	return fmt.Errorf("student %s not found", studentID)
}

func (f *fakeRepo) FirstStudentForParentSchool(_ context.Context, parentSchoolID uuid.UUID) (*stumodel.SchoolStudentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.SchoolStudentParentSchoolID != nil && *s.SchoolStudentParentSchoolID == parentSchoolID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateParentSchool(ctx context.Context, ps *onbmodel.ParentSchoolModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "CreateParentSchool")
	if f.failCreateParentSchoolFK {
		return errors.New(`insert or update on table "parent_schools" violates foreign key constraint "fk_parent_schools_parent_user"`)
	}
	ps.ParentSchoolID = uuid.New()
	ps.ParentSchoolCreatedAt = time.Now().UTC()
	cp := *ps
	f.relationships = append(f.relationships, &cp)
	return nil
}

func (f *fakeRepo) FindUnverifiedRelationshipByCode(_ context.Context, code string) (*onbmodel.ParentSchoolModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.relationships {
		if r.ParentSchoolVerificationCode == code && !r.ParentSchoolIsVerified {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) MarkRelationshipVerified(_ context.Context, ps *onbmodel.ParentSchoolModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.relationships {
		if r.ParentSchoolID == ps.ParentSchoolID && !r.ParentSchoolIsVerified {
			r.ParentSchoolIsVerified = true
			r.ParentSchoolVerifiedAt = ps.ParentSchoolVerifiedAt
			return nil
		}
	}
	return errors.New("relationship not found or already verified")
}

func (f *fakeRepo) CreateBatch(_ context.Context, b *onbmodel.StudentImportBatchModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.StudentImportBatchID = uuid.New()
	b.StudentImportBatchCreatedAt = time.Now().UTC()
	cp := *b
	f.batches[b.StudentImportBatchID] = &cp
	return nil
}

func (f *fakeRepo) UpdateBatchProgress(_ context.Context, b *onbmodel.StudentImportBatchModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	if f.failUpdateAfterN > 0 && f.updateCalls > f.failUpdateAfterN {
		// status failed tetap boleh ditulis, biar markBatchFailed kelihatan;
		// checkpoint biasa yang gagal
		if b.StudentImportBatchStatus != onbmodel.ImportBatchFailed {
			return errors.New("checkpoint write: connection reset")
		}
	}

	stored, ok := f.batches[b.StudentImportBatchID]
	if !ok {
		return fmt.Errorf("batch %s not found", b.StudentImportBatchID)
	}
	stored.StudentImportBatchStatus = b.StudentImportBatchStatus
	stored.StudentImportBatchSuccessfulRecords = b.StudentImportBatchSuccessfulRecords
	stored.StudentImportBatchFailedRecords = b.StudentImportBatchFailedRecords
	stored.StudentImportBatchResultLog = append([]byte(nil), b.StudentImportBatchResultLog...)
	stored.StudentImportBatchCompletedAt = b.StudentImportBatchCompletedAt

	f.checkpoints = append(f.checkpoints, progressSnap{
		Status:    b.StudentImportBatchStatus,
		Succeeded: b.StudentImportBatchSuccessfulRecords,
		Failed:    b.StudentImportBatchFailedRecords,
	})
	return nil
}

func (f *fakeRepo) GetBatch(_ context.Context, schoolID, batchID uuid.UUID) (*onbmodel.StudentImportBatchModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.batches[batchID]
	if !ok || b.StudentImportBatchSchoolID != schoolID {
		return nil, nil
	}
	cp := *b
	cp.StudentImportBatchResultLog = append([]byte(nil), b.StudentImportBatchResultLog...)
	return &cp, nil
}

func (f *fakeRepo) CreateImportRecord(ctx context.Context, rec *onbmodel.StudentImportRecordModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noteDeadline(ctx, "CreateImportRecord")
	rec.StudentImportRecordID = uuid.New()
	cp := *rec
	f.records = append(f.records, &cp)
	return nil
}

// newTestService: service dengan fake repo + console mailer + config default.
func newTestService(repo *fakeRepo) (*BulkImportService, *mailer.ConsoleMailer) {
	mail := mailer.NewConsoleMailer()
	return NewBulkImportService(repo, mail, configs.DefaultOnboardingConfig()), mail
}

// helper akses aman untuk assertion
func (f *fakeRepo) usersWithRole(role string) []*usermodel.UserModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*usermodel.UserModel
	for _, u := range f.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeRepo) snapshots() []progressSnap {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]progressSnap(nil), f.checkpoints...)
}

func (f *fakeRepo) relationshipCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.relationships)
}

func (f *fakeRepo) sawDeadline(method string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deadlineSeen[method]
}

func (f *fakeRepo) studentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.students)
}
