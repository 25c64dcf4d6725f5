package dto

// ── 仪表盘模块 DTO ──

// DashboardTotals 全局统计
type DashboardTotals struct {
	Students int64 `json:"students"`
	Teachers int64 `json:"teachers"`
	Classes  int64 `json:"classes"`
	Subjects int64 `json:"subjects"`
}

// DayDistribution 单日排课数量
type DayDistribution struct {
	Day     string `json:"day"` // Mon..Fri 短名称
	Classes int64  `json:"classes"`
}

// DashboardResponse 管理员仪表盘响应
type DashboardResponse struct {
	Totals             DashboardTotals   `json:"totals"`
	WeeklyDistribution []DayDistribution `json:"weekly_distribution"`
}
