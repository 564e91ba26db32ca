package service

import (
	"math"

	"task-manager/internal/model"
)

// BuildTaskStats 將聚合結果轉成對外格式；沒有任務時所有欄位皆為 0
func BuildTaskStats(row model.TaskStatsRow) model.TaskStats {
	if row.Total <= 0 {
		return model.TaskStats{}
	}
	return model.TaskStats{
		TotalTasks:     row.Total,
		CompletedTasks: row.Completed,
		PendingTasks:   row.Total - row.Completed,
		TotalCost:      round2(row.TotalCost),
		TotalHours:     round2(row.TotalHours),
		AvgCost:        round2(row.AvgCost),
		AvgHours:       round2(row.AvgHours),
		CompletionRate: int64(math.Round(float64(row.Completed) / float64(row.Total) * 100)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
