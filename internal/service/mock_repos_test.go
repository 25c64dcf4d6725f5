package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"connected/backend/internal/model"
	"connected/backend/internal/repository"
)

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	slots  map[int64]*model.TimetableSlot
	nextID int64

	// 关联数据源，GetByID/FindConflicts 用来模拟 Preload
	classes  *mockClassRepo
	subjects *mockSubjectRepo
	users    *mockUserRepo
}

func newMockTimetableRepo(classes *mockClassRepo, subjects *mockSubjectRepo, users *mockUserRepo) *mockTimetableRepo {
	return &mockTimetableRepo{
		slots:    make(map[int64]*model.TimetableSlot),
		nextID:   1,
		classes:  classes,
		subjects: subjects,
		users:    users,
	}
}

// withAssoc 返回带关联对象的槽位副本
func (m *mockTimetableRepo) withAssoc(slot *model.TimetableSlot) *model.TimetableSlot {
	cp := *slot
	if m.classes != nil {
		cp.Class = m.classes.classes[cp.ClassID]
	}
	if m.subjects != nil {
		cp.Subject = m.subjects.subjects[cp.SubjectID]
	}
	if m.users != nil && cp.TeacherUserID != nil {
		cp.Teacher = m.users.users[*cp.TeacherUserID]
	}
	return &cp
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id int64) (*model.TimetableSlot, error) {
	if s, ok := m.slots[id]; ok {
		return m.withAssoc(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) sortedByClass(classID int64, onlyWithTeacher bool) []model.TimetableSlot {
	var result []model.TimetableSlot
	for _, s := range m.slots {
		if s.ClassID != classID {
			continue
		}
		if onlyWithTeacher && s.TeacherUserID == nil {
			continue
		}
		result = append(result, *m.withAssoc(s))
	}
	sort.Slice(result, func(i, j int) bool {
		di, dj := model.DayNumber(result[i].DayOfWeek), model.DayNumber(result[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].Period < result[j].Period
	})
	return result
}

func (m *mockTimetableRepo) ListByClass(_ context.Context, classID int64) ([]model.TimetableSlot, error) {
	return m.sortedByClass(classID, false), nil
}

func (m *mockTimetableRepo) ListByClassWithTeacher(_ context.Context, classID int64) ([]model.TimetableSlot, error) {
	return m.sortedByClass(classID, true), nil
}

func (m *mockTimetableRepo) Create(_ context.Context, slot *model.TimetableSlot) error {
	slot.ID = m.nextID
	m.nextID++
	cp := *slot
	m.slots[slot.ID] = &cp
	return nil
}

func (m *mockTimetableRepo) Update(_ context.Context, slot *model.TimetableSlot) error {
	existing, ok := m.slots[slot.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.DayOfWeek = slot.DayOfWeek
	existing.Period = slot.Period
	existing.StartTime = slot.StartTime
	existing.EndTime = slot.EndTime
	existing.SubjectID = slot.SubjectID
	existing.TeacherUserID = slot.TeacherUserID
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id int64) error {
	delete(m.slots, id)
	return nil
}

func (m *mockTimetableRepo) FindConflicts(_ context.Context, teacherUserID int64, dayName, startTime, endTime string, excludeSlotID *int64) ([]model.TimetableSlot, error) {
	var result []model.TimetableSlot
	for _, s := range m.slots {
		if s.TeacherUserID == nil || *s.TeacherUserID != teacherUserID {
			continue
		}
		if s.DayOfWeek != dayName {
			continue
		}
		if excludeSlotID != nil && s.ID == *excludeSlotID {
			continue
		}
		if model.Overlaps(startTime, endTime, s.StartTime, s.EndTime) {
			result = append(result, *m.withAssoc(s))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTimetableRepo) CountByDay(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, s := range m.slots {
		counts[s.DayOfWeek]++
	}
	return counts, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes         map[int64]*model.Class
	studentsByClass map[int64][]int64 // classID → userIDs
	teachersByClass map[int64][]int64
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{
		classes:         make(map[int64]*model.Class),
		studentsByClass: make(map[int64][]int64),
		teachersByClass: make(map[int64][]int64),
	}
}

func (m *mockClassRepo) GetByID(_ context.Context, id int64) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.classes)), nil
}

func (m *mockClassRepo) StudentCounts(_ context.Context) (map[int64]int, error) {
	counts := make(map[int64]int)
	for classID, ids := range m.studentsByClass {
		counts[classID] = len(ids)
	}
	return counts, nil
}

func (m *mockClassRepo) TeacherCounts(_ context.Context) (map[int64]int, error) {
	counts := make(map[int64]int)
	for classID, ids := range m.teachersByClass {
		counts[classID] = len(ids)
	}
	return counts, nil
}

func (m *mockClassRepo) SubjectNamesByClass(_ context.Context) (map[int64][]string, error) {
	return map[int64][]string{}, nil
}

func (m *mockClassRepo) ListTeachersByClass(_ context.Context, classID int64) ([]model.User, map[int64]*model.Subject, error) {
	return nil, map[int64]*model.Subject{}, nil
}

func (m *mockClassRepo) ListStudentsByClass(_ context.Context, classID int64) ([]model.User, error) {
	return nil, nil
}

func (m *mockClassRepo) AssignStudents(_ context.Context, classID int64, studentIDs []int64) error {
	// 学生从原班级移除后加入新班级
	for cid, ids := range m.studentsByClass {
		var kept []int64
		for _, id := range ids {
			moved := false
			for _, sid := range studentIDs {
				if id == sid {
					moved = true
					break
				}
			}
			if !moved {
				kept = append(kept, id)
			}
		}
		m.studentsByClass[cid] = kept
	}
	m.studentsByClass[classID] = append(m.studentsByClass[classID], studentIDs...)
	return nil
}

func (m *mockClassRepo) ReplaceTeachers(_ context.Context, classID int64, teacherIDs []int64) error {
	m.teachersByClass[classID] = append([]int64(nil), teacherIDs...)
	return nil
}

func (m *mockClassRepo) AddTeacherToClasses(_ context.Context, teacherID int64, classIDs []int64) error {
	for _, classID := range classIDs {
		exists := false
		for _, id := range m.teachersByClass[classID] {
			if id == teacherID {
				exists = true
				break
			}
		}
		if !exists {
			m.teachersByClass[classID] = append(m.teachersByClass[classID], teacherID)
		}
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[int64]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[int64]*model.Subject)}
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.subjects)), nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users           map[int64]*model.User
	roles           map[string]*model.Role
	studentProfiles map[int64]*model.StudentProfile
	teacherProfiles map[int64]*model.TeacherProfile
	nextID          int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[int64]*model.User),
		roles: map[string]*model.Role{
			"admin":   {ID: 1, Name: "admin"},
			"teacher": {ID: 2, Name: "teacher"},
			"student": {ID: 3, Name: "student"},
		},
		studentProfiles: make(map[int64]*model.StudentProfile),
		teacherProfiles: make(map[int64]*model.TeacherProfile),
		nextID:          1,
	}
}

// addUser 测试辅助：按角色名添加用户并返回 ID
func (m *mockUserRepo) addUser(fullName, email, roleName string) int64 {
	role := m.roles[roleName]
	id := m.nextID
	m.nextID++
	m.users[id] = &model.User{
		ID:       id,
		RoleID:   role.ID,
		FullName: fullName,
		Email:    email,
		Status:   "active",
		Role:     role,
	}
	return id
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetTeacherByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok || u.Role == nil || u.Role.Name != "teacher" {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetRoleByName(_ context.Context, name string) (*model.Role, error) {
	if r, ok := m.roles[name]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, roleName string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role != nil && u.Role.Name == roleName {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	cp := *user
	for _, r := range m.roles {
		if r.ID == user.RoleID {
			cp.Role = r
			break
		}
	}
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, roleName string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Role != nil && u.Role.Name == roleName {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CreateStudentProfile(_ context.Context, profile *model.StudentProfile) error {
	cp := *profile
	m.studentProfiles[profile.UserID] = &cp
	return nil
}

func (m *mockUserRepo) CreateTeacherProfile(_ context.Context, profile *model.TeacherProfile) error {
	cp := *profile
	m.teacherProfiles[profile.UserID] = &cp
	return nil
}

func (m *mockUserRepo) StudentProfilesByUserIDs(_ context.Context, userIDs []int64) ([]model.StudentProfile, error) {
	var result []model.StudentProfile
	for _, id := range userIDs {
		if p, ok := m.studentProfiles[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockUserRepo) TeacherProfilesByUserIDs(_ context.Context, userIDs []int64) ([]model.TeacherProfile, error) {
	var result []model.TeacherProfile
	for _, id := range userIDs {
		if p, ok := m.teacherProfiles[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockUserRepo) TeacherClassNames(_ context.Context, teacherIDs []int64) (map[int64][]string, error) {
	return map[int64][]string{}, nil
}

// ── Mock TxRunner ──
//
// 回调前对所有 mock 数据做快照，回调返回错误时恢复快照，
// 以此模拟数据库事务回滚。

type mockTxRunner struct {
	repo      *repository.Repository
	timetable *mockTimetableRepo
	classes   *mockClassRepo
	subjects  *mockSubjectRepo
	users     *mockUserRepo
}

func (t *mockTxRunner) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	snapSlots := snapshotMap(t.timetable.slots)
	snapNextSlotID := t.timetable.nextID
	snapUsers := snapshotMap(t.users.users)
	snapNextUserID := t.users.nextID
	snapStudentProfiles := snapshotMap(t.users.studentProfiles)
	snapTeacherProfiles := snapshotMap(t.users.teacherProfiles)
	snapStudents := snapshotSliceMap(t.classes.studentsByClass)
	snapTeachers := snapshotSliceMap(t.classes.teachersByClass)

	if err := fn(t.repo); err != nil {
		t.timetable.slots = snapSlots
		t.timetable.nextID = snapNextSlotID
		t.users.users = snapUsers
		t.users.nextID = snapNextUserID
		t.users.studentProfiles = snapStudentProfiles
		t.users.teacherProfiles = snapTeacherProfiles
		t.classes.studentsByClass = snapStudents
		t.classes.teachersByClass = snapTeachers
		return err
	}
	return nil
}

func snapshotMap[V any](src map[int64]*V) map[int64]*V {
	dst := make(map[int64]*V, len(src))
	for k, v := range src {
		cp := *v
		dst[k] = &cp
	}
	return dst
}

func snapshotSliceMap(src map[int64][]int64) map[int64][]int64 {
	dst := make(map[int64][]int64, len(src))
	for k, v := range src {
		dst[k] = append([]int64(nil), v...)
	}
	return dst
}

// ── 测试夹具 ──

type testFixture struct {
	repo      *repository.Repository
	timetable *mockTimetableRepo
	classes   *mockClassRepo
	subjects  *mockSubjectRepo
	users     *mockUserRepo
}

func newTestFixture() *testFixture {
	classes := newMockClassRepo()
	subjects := newMockSubjectRepo()
	users := newMockUserRepo()
	timetable := newMockTimetableRepo(classes, subjects, users)

	repo := &repository.Repository{
		User:      users,
		Class:     classes,
		Subject:   subjects,
		Timetable: timetable,
	}
	repo.Tx = &mockTxRunner{
		repo:      repo,
		timetable: timetable,
		classes:   classes,
		subjects:  subjects,
		users:     users,
	}

	return &testFixture{
		repo:      repo,
		timetable: timetable,
		classes:   classes,
		subjects:  subjects,
		users:     users,
	}
}
