package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"connected/backend/internal/dto"
	"connected/backend/internal/model"
)

func newClassFixture() (*testFixture, ClassService) {
	f := newTestFixture()
	f.classes.classes[1] = &model.Class{ID: 1, Name: "Grade 7A"}
	f.classes.classes[2] = &model.Class{ID: 2, Name: "Grade 7B"}
	return f, NewClassService(f.repo, zap.NewNop())
}

func TestAssignStudents_MovesBetweenClasses(t *testing.T) {
	f, svc := newClassFixture()
	studentID := f.users.addUser("李同学", "li@connected.dev", "student")
	f.classes.studentsByClass[1] = []int64{studentID}

	err := svc.AssignStudents(context.Background(), &dto.AssignStudentsRequest{
		ClassID:    2,
		StudentIDs: []int64{studentID},
	})
	if err != nil {
		t.Fatalf("分配学生失败: %v", err)
	}

	if len(f.classes.studentsByClass[1]) != 0 {
		t.Errorf("期望学生离开班级 1, 实际 %v", f.classes.studentsByClass[1])
	}
	if len(f.classes.studentsByClass[2]) != 1 || f.classes.studentsByClass[2][0] != studentID {
		t.Errorf("期望学生进入班级 2, 实际 %v", f.classes.studentsByClass[2])
	}
}

func TestAssignStudents_RejectsNonStudent(t *testing.T) {
	f, svc := newClassFixture()
	teacherID := f.users.addUser("王老师", "wang@connected.dev", "teacher")

	err := svc.AssignStudents(context.Background(), &dto.AssignStudentsRequest{
		ClassID:    1,
		StudentIDs: []int64{teacherID},
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound, 实际 %v", err)
	}
}

func TestAssignStudents_UnknownClass(t *testing.T) {
	f, svc := newClassFixture()
	studentID := f.users.addUser("李同学", "li@connected.dev", "student")

	err := svc.AssignStudents(context.Background(), &dto.AssignStudentsRequest{
		ClassID:    99,
		StudentIDs: []int64{studentID},
	})
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound, 实际 %v", err)
	}
}

func TestAssignTeachers_ReplacesWholeSet(t *testing.T) {
	f, svc := newClassFixture()
	t1 := f.users.addUser("王老师", "wang@connected.dev", "teacher")
	t2 := f.users.addUser("张老师", "zhang@connected.dev", "teacher")
	f.classes.teachersByClass[1] = []int64{t1}

	err := svc.AssignTeachers(context.Background(), &dto.AssignTeachersRequest{
		ClassID:    1,
		TeacherIDs: []int64{t2},
	})
	if err != nil {
		t.Fatalf("分配教师失败: %v", err)
	}

	got := f.classes.teachersByClass[1]
	if len(got) != 1 || got[0] != t2 {
		t.Errorf("期望整体替换为 [%d], 实际 %v", t2, got)
	}
}

func TestAssignTeachers_EmptyListClears(t *testing.T) {
	f, svc := newClassFixture()
	t1 := f.users.addUser("王老师", "wang@connected.dev", "teacher")
	f.classes.teachersByClass[1] = []int64{t1}

	err := svc.AssignTeachers(context.Background(), &dto.AssignTeachersRequest{
		ClassID:    1,
		TeacherIDs: []int64{},
	})
	if err != nil {
		t.Fatalf("清空教师分配失败: %v", err)
	}
	if len(f.classes.teachersByClass[1]) != 0 {
		t.Errorf("期望分配已清空, 实际 %v", f.classes.teachersByClass[1])
	}
}

func TestAssignTeachers_RejectsNonTeacher(t *testing.T) {
	f, svc := newClassFixture()
	studentID := f.users.addUser("李同学", "li@connected.dev", "student")

	err := svc.AssignTeachers(context.Background(), &dto.AssignTeachersRequest{
		ClassID:    1,
		TeacherIDs: []int64{studentID},
	})
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound, 实际 %v", err)
	}
}

func TestListTeachers_ActiveOnlyWithSubject(t *testing.T) {
	f, svc := newClassFixture()
	f.subjects.subjects[1] = &model.Subject{ID: 1, Name: "Math"}
	t1 := f.users.addUser("王老师", "wang@connected.dev", "teacher")
	t2 := f.users.addUser("张老师", "zhang@connected.dev", "teacher")
	f.users.users[t2].Status = "disabled"

	subjectID := int64(1)
	f.users.teacherProfiles[t1] = &model.TeacherProfile{
		UserID:    t1,
		SubjectID: &subjectID,
		Subject:   f.subjects.subjects[1],
	}

	items, err := svc.ListTeachers(context.Background())
	if err != nil {
		t.Fatalf("查询教师列表失败: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("期望仅 1 名在职教师, 实际 %d", len(items))
	}
	if items[0].ID != t1 || items[0].FullName != "王老师" {
		t.Errorf("教师条目不符: %+v", items[0])
	}
	if items[0].Subject == nil || items[0].Subject.Name != "Math" {
		t.Errorf("期望嵌套科目 Math, 实际 %+v", items[0].Subject)
	}
}

func TestListStudents_ActiveOnlyWithClass(t *testing.T) {
	f, svc := newClassFixture()
	s1 := f.users.addUser("李同学", "li@connected.dev", "student")
	s2 := f.users.addUser("赵同学", "zhao@connected.dev", "student")
	f.users.users[s2].Status = "disabled"

	classID := int64(1)
	f.users.studentProfiles[s1] = &model.StudentProfile{
		UserID:  s1,
		ClassID: &classID,
		Class:   f.classes.classes[1],
	}

	items, err := svc.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("查询学生列表失败: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("期望仅 1 名在读学生, 实际 %d", len(items))
	}
	if items[0].Class == nil || items[0].Class.Name != "Grade 7A" {
		t.Errorf("期望嵌套班级 Grade 7A, 实际 %+v", items[0].Class)
	}

	// 无班级学生的 class 字段为 null
	s3 := f.users.addUser("孙同学", "sun@connected.dev", "student")
	f.users.studentProfiles[s3] = &model.StudentProfile{UserID: s3}
	items, err = svc.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("查询学生列表失败: %v", err)
	}
	for _, it := range items {
		if it.ID == s3 && it.Class != nil {
			t.Errorf("未分班学生 class 应为 nil, 实际 %+v", it.Class)
		}
	}
}

func TestListClasses_CountsAndEmptySubjects(t *testing.T) {
	f, svc := newClassFixture()
	s1 := f.users.addUser("李同学", "li@connected.dev", "student")
	s2 := f.users.addUser("赵同学", "zhao@connected.dev", "student")
	f.classes.studentsByClass[1] = []int64{s1, s2}

	items, err := svc.ListClasses(context.Background())
	if err != nil {
		t.Fatalf("查询班级列表失败: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("期望 2 个班级, 实际 %d", len(items))
	}
	if items[0].Name != "Grade 7A" || items[0].StudentsCount != 2 {
		t.Errorf("班级 1 不符: %+v", items[0])
	}
	if items[0].Subjects == nil {
		t.Error("subjects 应为空数组而非 nil")
	}
}
