package checklist

import (
  "math"
)

type CategoryProgress struct {
  Completed    int     `json:"completed"`
  Total        int     `json:"total"`
  Percentage   int     `json:"percentage"`
}

type Stats struct {
  TotalItems             int                            `json:"total_items"`
  CompletedItems         int                            `json:"completed_items"`
  CompletionPercentage   int                            `json:"completion_percentage"`
  TotalPoints            int                            `json:"total_points"`
  PerCategory            map[string]CategoryProgress    `json:"per_category"`
}

func roundPercentage(completed, total int) int {
  if total <= 0 {
    return 0
  }
  return int(math.Round(float64(completed) / float64(total) * 100))
}

// ComputeStats derives completion totals from a completion map, always
// totalling over the fixed catalog. Item ids missing from the map count as
// not completed; ids the catalog does not know are ignored.
func ComputeStats(checked map[string]bool) Stats {
  stats := Stats{
    PerCategory: make(map[string]CategoryProgress, len(catalog)),
  }
  for _, category := range catalog {
    progress := CategoryProgress{Total: len(category.Items)}
    for _, it := range category.Items {
      stats.TotalItems++
      if checked[it.ID] {
        stats.CompletedItems++
        stats.TotalPoints += it.Points
        progress.Completed++
      }
    }
    progress.Percentage = roundPercentage(progress.Completed, progress.Total)
    stats.PerCategory[category.ID] = progress
  }
  stats.CompletionPercentage = roundPercentage(stats.CompletedItems, stats.TotalItems)
  return stats
}
