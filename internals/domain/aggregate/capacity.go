package aggregate

import "sort"

// CapacityPercentage is enrolled/max × 100, 0 when max is 0.
func CapacityPercentage(enrolled int64, maxStudents int) float64 {
	return Percent(float64(enrolled), float64(maxStudents))
}

// CollectionRate is collected / (enrolled × fee) × 100, 0 when the denominator is 0.
func CollectionRate(collected float64, enrolled int64, monthlyFee float64) float64 {
	return Percent(collected, float64(enrolled)*monthlyFee)
}

// AvailableSlots never goes negative.
func AvailableSlots(enrolled int64, maxStudents int) int64 {
	if left := int64(maxStudents) - enrolled; left > 0 {
		return left
	}
	return 0
}

type ClassCapacityRow struct {
	ID              uint
	Name            string
	MaxStudents     int
	CurrentStudents int64
}

type CapacityEntry struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	MaxStudents     int     `json:"max_students"`
	CurrentStudents int64   `json:"current_students"`
	UtilizationRate float64 `json:"utilization_rate"`
}

const capacityTop = 10

// CapacityUtilization keeps classes with utilization > 0, highest first, top 10.
func CapacityUtilization(rows []ClassCapacityRow) []CapacityEntry {
	out := make([]CapacityEntry, 0, len(rows))
	for _, r := range rows {
		rate := CapacityPercentage(r.CurrentStudents, r.MaxStudents)
		if rate <= 0 {
			continue
		}
		out = append(out, CapacityEntry{
			ID:              r.ID,
			Name:            r.Name,
			MaxStudents:     r.MaxStudents,
			CurrentStudents: r.CurrentStudents,
			UtilizationRate: rate,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UtilizationRate != out[j].UtilizationRate {
			return out[i].UtilizationRate > out[j].UtilizationRate
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > capacityTop {
		out = out[:capacityTop]
	}
	return out
}
