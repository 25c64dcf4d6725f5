package model

import "testing"

func TestDayMapping_RoundTrip(t *testing.T) {
	for num := 1; num <= 5; num++ {
		name, ok := DayName(num)
		if !ok {
			t.Fatalf("DayName(%d) 应存在", num)
		}
		if got := DayNumber(name); got != num {
			t.Errorf("往返映射失败: %d → %s → %d", num, name, got)
		}
	}
}

func TestDayMapping_Invalid(t *testing.T) {
	if _, ok := DayName(0); ok {
		t.Error("DayName(0) 不应存在")
	}
	if _, ok := DayName(6); ok {
		t.Error("DayName(6) 不应存在：不支持周末")
	}
	if got := DayNumber("Saturday"); got != 0 {
		t.Errorf("未知星期名称应返回 0，实际=%d", got)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd, bStart, bEnd string
		want                   bool
	}{
		{"部分重叠", "09:00", "10:00", "09:30", "10:30", true},
		{"完全包含", "09:00", "12:00", "10:00", "11:00", true},
		{"完全相同", "09:00", "10:00", "09:00", "10:00", true},
		{"端点相接不冲突", "09:00", "10:00", "10:00", "11:00", false},
		{"完全分离", "08:00", "09:00", "10:00", "11:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v，期望 %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// 重叠判定必须对称
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps 不对称: (%s-%s) vs (%s-%s)",
					tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
			}
		})
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59"}
	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("ValidClock(%q) 应为 true", s)
		}
	}

	invalid := []string{"24:00", "12:60", "9:00", "09-00", "ab:cd", "09:00:00", ""}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("ValidClock(%q) 应为 false", s)
		}
	}
}
