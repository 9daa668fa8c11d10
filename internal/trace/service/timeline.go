package service

import (
	"fmt"
	"sort"
	"time"
)

// TimelineItem 溯源时间线条目
type TimelineItem struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Meta      string    `json:"meta,omitempty"`
	Body      string    `json:"body,omitempty"`
}

// ProjectTimeline 将溯源视图的异构事件合并为一条按时间升序的叙事时间线。
// 纯函数：同样输入给出同样输出，每次调用重新计算。
// 无法确定时间戳的条目会被丢弃；时间相同的条目保持插入顺序。
func ProjectTimeline(view *ProvenanceView) []TimelineItem {
	if view == nil || view.Batch == nil {
		return nil
	}

	var items []TimelineItem

	if view.Batch.HarvestDate != nil {
		item := TimelineItem{
			Timestamp: *view.Batch.HarvestDate,
			Kind:      "harvested",
			Title:     "Harvested",
		}
		if view.Farm != nil {
			item.Meta = fmt.Sprintf("%s, %s", view.Farm.Name, view.Farm.Location)
		}
		items = append(items, item)
	}

	for _, ev := range view.CollectionEvents {
		ts, ok := resolveTimestamp(ev.CollectionDate, ev.CreatedAt)
		if !ok {
			continue
		}
		item := TimelineItem{
			Timestamp: ts,
			Kind:      "collected",
			Title:     "Collected",
			Body:      ev.QualityNotes,
		}
		if ev.MoistureLevel != nil {
			item.Meta = fmt.Sprintf("Moisture: %.1f%%", *ev.MoistureLevel)
		}
		items = append(items, item)
	}

	for _, ev := range view.ProcessingEvents {
		ts, ok := resolveTimestamp(ev.ProcessDate, ev.CreatedAt)
		if !ok {
			continue
		}
		items = append(items, TimelineItem{
			Timestamp: ts,
			Kind:      "processing-" + ev.ProcessType,
			Title:     fmt.Sprintf("Processing: %s", ev.ProcessType),
			Meta:      ev.FacilityName,
			Body:      ev.Notes,
		})
	}

	if view.Batch.Status != "" {
		ts := view.Batch.UpdatedAt
		if ts.IsZero() {
			ts = view.Batch.CreatedAt
		}
		if !ts.IsZero() {
			items = append(items, TimelineItem{
				Timestamp: ts,
				Kind:      "status-" + view.Batch.Status,
				Title:     fmt.Sprintf("Status: %s", view.Batch.Status),
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.Before(items[j].Timestamp)
	})
	return items
}

func resolveTimestamp(primary *time.Time, fallback time.Time) (time.Time, bool) {
	if primary != nil && !primary.IsZero() {
		return *primary, true
	}
	if !fallback.IsZero() {
		return fallback, true
	}
	return time.Time{}, false
}
